package generators

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/models"
)

// ProductWriter persists products in bulk.
type ProductWriter interface {
	CreateProducts(ctx context.Context, products []models.Product) error
}

// ProductGenerator creates products with random prices and VAT rates.
type ProductGenerator struct {
	base
	store ProductWriter
}

// NewProductGenerator returns a generator writing through store. It fails
// with ErrNilStore, ErrNilConfig or ErrNilFaker when an argument is nil.
func NewProductGenerator(store ProductWriter, cfg *config.GeneratorConfig, f *gofakeit.Faker) (*ProductGenerator, error) {
	b, err := newBase(store, cfg, f)
	if err != nil {
		return nil, err
	}
	return &ProductGenerator{base: b, store: store}, nil
}

// Name identifies the stage in logs and results.
func (g *ProductGenerator) Name() string { return "products" }

// Generate builds count products and writes them in one call. Prices fall in
// [PriceMin, PriceMax] rounded to 2 decimals. VAT falls in [0, VATMax]
// truncated to 2 decimals, so it stays below 1 for any valid VATMax.
// Codes come from the faker so a fixed seed gives the same products.
func (g *ProductGenerator) Generate(ctx context.Context, count int) ([]models.Product, error) {
	if err := checkCount("product count", count); err != nil {
		return nil, err
	}
	products := make([]models.Product, count)
	for i := range products {
		code, err := uuid.Parse(g.faker.UUID())
		if err != nil {
			return nil, err
		}
		products[i] = models.Product{
			ProductCode: code,
			Price:       decimal.NewFromFloat(g.faker.Float64Range(g.cfg.PriceMin, g.cfg.PriceMax)).Round(2),
			VAT:         decimal.NewFromFloat(g.faker.Float64Range(0, g.cfg.VATMax)).Truncate(2),
		}
		if err := checkEntity("product", i, products[i].Validate()); err != nil {
			return nil, err
		}
	}
	if err := g.store.CreateProducts(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Run generates cfg.ProductCount products and reports how many were written.
func (g *ProductGenerator) Run(ctx context.Context) (Result, error) {
	products, err := g.Generate(ctx, g.cfg.ProductCount)
	if err != nil {
		return Result{Entity: g.Name()}, err
	}
	return Result{Entity: g.Name(), Created: len(products)}, nil
}
