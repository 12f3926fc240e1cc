package generators

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/models"
)

// ShopWriter persists shops in bulk.
type ShopWriter interface {
	CreateShops(ctx context.Context, shops []models.Shop) error
}

// ShopGenerator creates shops named after fake companies.
type ShopGenerator struct {
	base
	store ShopWriter
}

// NewShopGenerator returns a generator writing through store. It fails
// with ErrNilStore, ErrNilConfig or ErrNilFaker when an argument is nil.
func NewShopGenerator(store ShopWriter, cfg *config.GeneratorConfig, f *gofakeit.Faker) (*ShopGenerator, error) {
	b, err := newBase(store, cfg, f)
	if err != nil {
		return nil, err
	}
	return &ShopGenerator{base: b, store: store}, nil
}

// Name identifies the stage in logs and results.
func (g *ShopGenerator) Name() string { return "shops" }

// Generate builds count shops and writes them in one call.
func (g *ShopGenerator) Generate(ctx context.Context, count int) ([]models.Shop, error) {
	if err := checkCount("shop count", count); err != nil {
		return nil, err
	}
	shops := make([]models.Shop, count)
	for i := range shops {
		shops[i] = models.Shop{Name: g.faker.Company()}
		if err := checkEntity("shop", i, shops[i].Validate()); err != nil {
			return nil, err
		}
	}
	if err := g.store.CreateShops(ctx, shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// Run generates cfg.ShopCount shops and reports how many were written.
func (g *ShopGenerator) Run(ctx context.Context) (Result, error) {
	shops, err := g.Generate(ctx, g.cfg.ShopCount)
	if err != nil {
		return Result{Entity: g.Name()}, err
	}
	return Result{Entity: g.Name(), Created: len(shops)}, nil
}
