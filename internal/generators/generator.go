// Package generators synthesizes shops, clients, products and orders and
// writes each set through the store in one bulk call.
package generators

import (
	"fmt"
	"reflect"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/validation"
)

// Result reports what one generation step did.
type Result struct {
	Entity  string `json:"entity"`
	Created int    `json:"created"`
	Links   int    `json:"links,omitempty"` // order-product rows, orders step only
	Skipped bool   `json:"skipped,omitempty"`
}

// NewFaker returns the random source shared by the generators.
// A zero seed picks a random one.
func NewFaker(seed int64) *gofakeit.Faker {
	return gofakeit.New(uint64(seed))
}

type base struct {
	cfg   *config.GeneratorConfig
	faker *gofakeit.Faker
}

func newBase(store any, cfg *config.GeneratorConfig, f *gofakeit.Faker) (base, error) {
	if isNil(store) {
		return base{}, ErrNilStore
	}
	if cfg == nil {
		return base{}, ErrNilConfig
	}
	if f == nil {
		return base{}, ErrNilFaker
	}
	return base{cfg: cfg, faker: f}, nil
}

// isNil also catches a nil pointer stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func checkCount(name string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %s = %d", ErrNegativeCount, name, count)
	}
	return nil
}

func checkEntity(entity string, index int, v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return fmt.Errorf("%w: %s #%d: %w", ErrInvalidEntity, entity, index, v)
}
