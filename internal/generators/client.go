package generators

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/models"
)

// ClientWriter persists clients in bulk.
type ClientWriter interface {
	CreateClients(ctx context.Context, clients []models.Client) error
}

// ClientGenerator creates clients with fake postal addresses.
type ClientGenerator struct {
	base
	store ClientWriter
}

// NewClientGenerator returns a generator writing through store. It fails
// with ErrNilStore, ErrNilConfig or ErrNilFaker when an argument is nil.
func NewClientGenerator(store ClientWriter, cfg *config.GeneratorConfig, f *gofakeit.Faker) (*ClientGenerator, error) {
	b, err := newBase(store, cfg, f)
	if err != nil {
		return nil, err
	}
	return &ClientGenerator{base: b, store: store}, nil
}

// Name identifies the stage in logs and results.
func (g *ClientGenerator) Name() string { return "clients" }

// Generate builds count clients and writes them in one call.
func (g *ClientGenerator) Generate(ctx context.Context, count int) ([]models.Client, error) {
	if err := checkCount("client count", count); err != nil {
		return nil, err
	}
	clients := make([]models.Client, count)
	for i := range clients {
		clients[i] = models.Client{
			Street:   g.faker.Street(),
			City:     g.faker.City(),
			PostCode: g.faker.Zip(),
		}
		if err := checkEntity("client", i, clients[i].Validate()); err != nil {
			return nil, err
		}
	}
	if err := g.store.CreateClients(ctx, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// Run generates cfg.ClientCount clients and reports how many were written.
func (g *ClientGenerator) Run(ctx context.Context) (Result, error) {
	clients, err := g.Generate(ctx, g.cfg.ClientCount)
	if err != nil {
		return Result{Entity: g.Name()}, err
	}
	return Result{Entity: g.Name(), Created: len(clients)}, nil
}
