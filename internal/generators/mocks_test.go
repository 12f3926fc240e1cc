package generators

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/diewo77/go-datawriter/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateShops(ctx context.Context, shops []models.Shop) error {
	return m.Called(ctx, shops).Error(0)
}

func (m *mockStore) CreateClients(ctx context.Context, clients []models.Client) error {
	return m.Called(ctx, clients).Error(0)
}

func (m *mockStore) CreateProducts(ctx context.Context, products []models.Product) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockStore) CreateOrders(ctx context.Context, orders []models.Order) error {
	args := m.Called(ctx, orders)
	for i := range orders {
		orders[i].ID = uint(i + 1)
	}
	return args.Error(0)
}

func (m *mockStore) CreateOrderProducts(ctx context.Context, items []models.OrderProduct) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockStore) ListShops(ctx context.Context) ([]models.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]models.Shop)
	return shops, args.Error(1)
}

func (m *mockStore) ListClients(ctx context.Context) ([]models.Client, error) {
	args := m.Called(ctx)
	clients, _ := args.Get(0).([]models.Client)
	return clients, args.Error(1)
}

func (m *mockStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}
