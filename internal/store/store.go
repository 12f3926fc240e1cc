// Package store persists the retail entities with gorm. Every bulk write runs
// in a single transaction so a failed call leaves nothing behind.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-datawriter/internal/db"
	"github.com/diewo77/go-datawriter/internal/models"
)

// DefaultBatchSize is used when New gets a non-positive batch size.
const DefaultBatchSize = 100

var (
	ErrNilDB       = errors.New("store: nil database")
	ErrUnknownKind = errors.New("store: unknown kind")
)

// Store is the relational entity store.
type Store struct {
	db            *gorm.DB
	batchSize     int
	sqlMigrations bool
}

// Option configures a Store.
type Option func(*Store)

// WithSQLMigrations makes EnsureSchema apply the embedded SQL migrations
// instead of AutoMigrate when the database is postgres.
func WithSQLMigrations(on bool) Option {
	return func(s *Store) { s.sqlMigrations = on }
}

// New wraps gdb. Inserts are sent in chunks of batchSize rows.
func New(gdb *gorm.DB, batchSize int, opts ...Option) (*Store, error) {
	if gdb == nil {
		return nil, ErrNilDB
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	s := &Store{db: gdb, batchSize: batchSize}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB { return s.db }

// EnsureSchema brings the schema up to date, once per call, with either
// the SQL migrations or AutoMigrate. The two are never combined.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := db.Migrate(s.db.WithContext(ctx), s.sqlMigrations); err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// CreateShops inserts the shops and fills in their generated IDs.
func (s *Store) CreateShops(ctx context.Context, shops []models.Shop) error {
	return insertAll(ctx, s, KindShop, shops)
}

func (s *Store) CreateClients(ctx context.Context, clients []models.Client) error {
	return insertAll(ctx, s, KindClient, clients)
}

func (s *Store) CreateProducts(ctx context.Context, products []models.Product) error {
	return insertAll(ctx, s, KindProduct, products)
}

// CreateOrders inserts the orders and fills in their generated IDs.
func (s *Store) CreateOrders(ctx context.Context, orders []models.Order) error {
	return insertAll(ctx, s, KindOrder, orders)
}

func (s *Store) CreateOrderProducts(ctx context.Context, items []models.OrderProduct) error {
	return insertAll(ctx, s, KindOrderProduct, items)
}

// insertAll writes records in one transaction. Associations are never upserted.
func insertAll[T any](ctx context.Context, s *Store, kind Kind, records []T) error {
	if len(records) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).CreateInBatches(&records, s.batchSize).Error
	})
	if err != nil {
		return fmt.Errorf("store: insert %s: %w", kind, err)
	}
	return nil
}

// ListShops returns every shop ordered by ID.
func (s *Store) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.WithContext(ctx).Order("id").Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("store: list shops: %w", err)
	}
	return shops, nil
}

func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("store: list clients: %w", err)
	}
	return clients, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("product_code").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("store: list products: %w", err)
	}
	return products, nil
}

// ListOrders returns every order with its items and their products loaded.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("store: list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) ListOrderProducts(ctx context.Context) ([]models.OrderProduct, error) {
	var items []models.OrderProduct
	if err := s.db.WithContext(ctx).Order("order_id, product_code").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("store: list order products: %w", err)
	}
	return items, nil
}

// DeleteAll removes every row of kind and returns how many were deleted.
func (s *Store) DeleteAll(ctx context.Context, kind Kind) (int64, error) {
	model, err := kind.model()
	if err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(model)
	if res.Error != nil {
		return 0, fmt.Errorf("store: delete %s: %w", kind, res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of rows of kind.
func (s *Store) Count(ctx context.Context, kind Kind) (int64, error) {
	model, err := kind.model()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count %s: %w", kind, err)
	}
	return n, nil
}

const orderInfoSQL = `
SELECT o.id AS id,
       o.payment_method AS payment_method,
       c.street AS street,
       c.city AS city,
       c.post_code AS post_code,
       SUM(p.price * op.quantity) AS net_total
FROM orders o
JOIN shops s ON s.id = o.shop_id
JOIN clients c ON c.id = o.client_id
JOIN order_products op ON op.order_id = o.id
JOIN products p ON p.product_code = op.product_code
WHERE s.id % 2 = 1
  AND LOWER(c.city) LIKE ? ESCAPE '\'
GROUP BY o.id, o.payment_method, c.street, c.post_code, c.city
ORDER BY o.id`

// OrderInfo lists orders placed in odd-numbered shops by clients whose city
// contains citySubstring (case-insensitive), with their net total.
// Orders without products are not listed.
func (s *Store) OrderInfo(ctx context.Context, citySubstring string) ([]models.OrderInfo, error) {
	pattern := "%" + escapeLike(strings.ToLower(citySubstring)) + "%"
	var rows []models.OrderInfo
	if err := s.db.WithContext(ctx).Raw(orderInfoSQL, pattern).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: order info: %w", err)
	}
	for i := range rows {
		rows[i].NetTotal = rows[i].NetTotal.Round(2)
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
