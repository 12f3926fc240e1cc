package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-datawriter/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s, err := New(gdb, 2)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedGraph writes shops 1..2, clients in Lublin and Oslo, two products and three orders.
func seedGraph(t *testing.T, s *Store) (orders []models.Order, products []models.Product) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.CreateShops(ctx, []models.Shop{{Name: "A"}, {Name: "B"}}))
	require.NoError(t, s.CreateClients(ctx, []models.Client{
		{Street: "Krakowskie 1", City: "Lublin", PostCode: "20-001"},
		{Street: "Karl Johans gate 2", City: "Oslo", PostCode: "0154"},
	}))
	products = []models.Product{
		{ProductCode: uuid.New(), Price: dec("100.00"), VAT: dec("0.23")},
		{ProductCode: uuid.New(), Price: dec("12.50"), VAT: dec("0")},
	}
	require.NoError(t, s.CreateProducts(ctx, products))

	orders = []models.Order{
		{PaymentMethod: models.PaymentCash, ShopID: 1, ClientID: 1},
		{PaymentMethod: models.PaymentCreditCard, ShopID: 2, ClientID: 1},
		{PaymentMethod: models.PaymentOther, ShopID: 1, ClientID: 2},
	}
	require.NoError(t, s.CreateOrders(ctx, orders))
	require.NoError(t, s.CreateOrderProducts(ctx, []models.OrderProduct{
		{OrderID: orders[0].ID, ProductCode: products[0].ProductCode, Quantity: 2},
		{OrderID: orders[0].ID, ProductCode: products[1].ProductCode, Quantity: 3},
		{OrderID: orders[1].ID, ProductCode: products[1].ProductCode, Quantity: 1},
		{OrderID: orders[2].ID, ProductCode: products[1].ProductCode, Quantity: 4},
	}))
	return orders, products
}

func TestNew_NilDB(t *testing.T) {
	_, err := New(nil, 10)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	seedGraph(t, s)

	// sqlite has no SQL migrations, the flag falls back to AutoMigrate
	withFlag, err := New(s.DB(), 10, WithSQLMigrations(true))
	require.NoError(t, err)
	require.NoError(t, withFlag.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	n, err := s.Count(ctx, KindOrderProduct)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestCreateProducts_NoDependencies(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateProducts(ctx, []models.Product{
		{ProductCode: uuid.New(), Price: dec("9.99"), VAT: dec("0.08")},
	}))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].VAT.Equal(dec("0.08")))
}

func TestCreate_EmptyIsNoop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateShops(ctx, nil))
	require.NoError(t, s.CreateOrderProducts(ctx, []models.OrderProduct{}))

	n, err := s.Count(ctx, KindShop)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateOrders_FillsIDs(t *testing.T) {
	s := setupTestStore(t)
	orders, _ := seedGraph(t, s)
	for i, o := range orders {
		assert.NotZero(t, o.ID, "order %d", i)
	}
	assert.NotEqual(t, orders[0].ID, orders[1].ID)
}

func TestListOrders_PreloadsProducts(t *testing.T) {
	s := setupTestStore(t)
	_, products := seedGraph(t, s)

	orders, err := s.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Len(t, orders[0].Items, 2)
	for _, item := range orders[0].Items {
		require.NotNil(t, item.Product)
	}
	assert.True(t, orders[1].Items[0].Product.Price.Equal(products[1].Price))
}

func TestCreateOrderProducts_ForeignKeyFailureWritesNothing(t *testing.T) {
	s := setupTestStore(t)
	orders, products := seedGraph(t, s)
	ctx := context.Background()

	before, err := s.Count(ctx, KindOrderProduct)
	require.NoError(t, err)

	err = s.CreateOrderProducts(ctx, []models.OrderProduct{
		{OrderID: orders[1].ID, ProductCode: products[0].ProductCode, Quantity: 1},
		{OrderID: orders[1].ID, ProductCode: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store: insert order_products")

	after, err := s.Count(ctx, KindOrderProduct)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateOrderProducts_DuplicatePairRejected(t *testing.T) {
	s := setupTestStore(t)
	orders, products := seedGraph(t, s)
	err := s.CreateOrderProducts(context.Background(), []models.OrderProduct{
		{OrderID: orders[2].ID, ProductCode: products[1].ProductCode, Quantity: 1},
	})
	require.Error(t, err)
}

func TestDeleteAll_ReverseOrder(t *testing.T) {
	s := setupTestStore(t)
	seedGraph(t, s)
	ctx := context.Background()

	_, err := s.DeleteAll(ctx, KindShop)
	require.Error(t, err, "shops are still referenced by orders")

	kinds := Kinds()
	for i := len(kinds) - 1; i >= 0; i-- {
		_, err := s.DeleteAll(ctx, kinds[i])
		require.NoError(t, err, kinds[i].String())
	}
	for _, k := range kinds {
		n, err := s.Count(ctx, k)
		require.NoError(t, err)
		assert.Zero(t, n, k.String())
	}
}

func TestDeleteAll_UnknownKind(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.DeleteAll(context.Background(), Kind(42))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOrderInfo(t *testing.T) {
	s := setupTestStore(t)
	orders, _ := seedGraph(t, s)

	rows, err := s.OrderInfo(context.Background(), "u")
	require.NoError(t, err)

	// Order 2 is in shop 2, order 3 belongs to a client in Oslo.
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, orders[0].ID, row.ID)
	assert.Equal(t, models.PaymentCash, row.PaymentMethod)
	assert.Equal(t, "Lublin", row.City)
	assert.Equal(t, "20-001", row.PostCode)
	assert.True(t, row.NetTotal.Equal(dec("237.50")), "net total %s", row.NetTotal)
}

func TestOrderInfo_CaseInsensitiveAndEscaped(t *testing.T) {
	s := setupTestStore(t)
	seedGraph(t, s)
	ctx := context.Background()

	rows, err := s.OrderInfo(ctx, "OSL")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Oslo", rows[0].City)

	rows, err = s.OrderInfo(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
