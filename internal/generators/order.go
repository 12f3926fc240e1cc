package generators

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/models"
)

// MaxQuantity is the largest quantity drawn for an order line.
const MaxQuantity = 5

// OrderStore is what the order generator reads and writes.
type OrderStore interface {
	ListShops(ctx context.Context) ([]models.Shop, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateOrders(ctx context.Context, orders []models.Order) error
	CreateOrderProducts(ctx context.Context, items []models.OrderProduct) error
}

// OrderGenerator creates orders over the existing shops, clients and products,
// then links each order to a random subset of products.
type OrderGenerator struct {
	base
	store OrderStore
}

// NewOrderGenerator returns a generator writing through store. It fails
// with ErrNilStore, ErrNilConfig or ErrNilFaker when an argument is nil.
func NewOrderGenerator(store OrderStore, cfg *config.GeneratorConfig, f *gofakeit.Faker) (*OrderGenerator, error) {
	b, err := newBase(store, cfg, f)
	if err != nil {
		return nil, err
	}
	return &OrderGenerator{base: b, store: store}, nil
}

// Name identifies the stage in logs and results.
func (g *OrderGenerator) Name() string { return "orders" }

// Generate writes orderCount orders, then their product lines. Each order
// gets between 1 and min(maxProductsPerOrder, products) distinct products.
// Nothing is written and no error is returned when shops, clients or
// products are missing.
func (g *OrderGenerator) Generate(ctx context.Context, orderCount, maxProductsPerOrder int) ([]models.Order, []models.OrderProduct, error) {
	orders, items, _, err := g.generate(ctx, orderCount, maxProductsPerOrder)
	return orders, items, err
}

// Run generates cfg.OrderCount orders with up to cfg.MaxProductsPerOrder
// products each. The result is marked skipped when prerequisites are missing.
func (g *OrderGenerator) Run(ctx context.Context) (Result, error) {
	orders, items, skipped, err := g.generate(ctx, g.cfg.OrderCount, g.cfg.MaxProductsPerOrder)
	if err != nil {
		return Result{Entity: g.Name()}, err
	}
	return Result{Entity: g.Name(), Created: len(orders), Links: len(items), Skipped: skipped}, nil
}

func (g *OrderGenerator) generate(ctx context.Context, orderCount, maxProductsPerOrder int) ([]models.Order, []models.OrderProduct, bool, error) {
	if err := checkCount("order count", orderCount); err != nil {
		return nil, nil, false, err
	}
	if err := checkCount("max products per order", maxProductsPerOrder); err != nil {
		return nil, nil, false, err
	}

	shops, err := g.store.ListShops(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	clients, err := g.store.ListClients(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	products, err := g.store.ListProducts(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	if len(shops) == 0 || len(clients) == 0 || len(products) == 0 {
		log.Warn().
			Int("shops", len(shops)).
			Int("clients", len(clients)).
			Int("products", len(products)).
			Msg("Cannot generate orders - missing prerequisite data")
		return nil, nil, true, nil
	}

	methods := models.PaymentMethods()
	orders := make([]models.Order, orderCount)
	for i := range orders {
		orders[i] = models.Order{
			PaymentMethod: methods[g.faker.Number(0, len(methods)-1)],
			ShopID:        shops[g.faker.Number(0, len(shops)-1)].ID,
			ClientID:      clients[g.faker.Number(0, len(clients)-1)].ID,
		}
		if err := checkEntity("order", i, orders[i].Validate()); err != nil {
			return nil, nil, false, err
		}
	}
	if err := g.store.CreateOrders(ctx, orders); err != nil {
		return nil, nil, false, err
	}

	items := g.pickProducts(orders, products, maxProductsPerOrder)
	for i := range items {
		if err := checkEntity("order product", i, items[i].Validate()); err != nil {
			return orders, nil, false, err
		}
	}
	if err := g.store.CreateOrderProducts(ctx, items); err != nil {
		return orders, nil, false, err
	}
	return orders, items, false, nil
}

// pickProducts draws, per order, a prefix of a fresh permutation of the
// product indices so no product repeats within an order.
func (g *OrderGenerator) pickProducts(orders []models.Order, products []models.Product, maxProductsPerOrder int) []models.OrderProduct {
	limit := min(maxProductsPerOrder, len(products))
	if limit == 0 {
		return nil
	}

	perm := make([]int, len(products))
	items := make([]models.OrderProduct, 0, len(orders)*(limit+1)/2)
	for _, order := range orders {
		for i := range perm {
			perm[i] = i
		}
		g.faker.ShuffleInts(perm)
		k := g.faker.Number(1, limit)
		for _, idx := range perm[:k] {
			items = append(items, models.OrderProduct{
				OrderID:     order.ID,
				ProductCode: products[idx].ProductCode,
				Quantity:    g.faker.Number(1, MaxQuantity),
			})
		}
	}
	return items
}
