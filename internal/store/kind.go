package store

import (
	"fmt"

	"github.com/diewo77/go-datawriter/internal/models"
)

// Kind names one of the persisted entity types.
type Kind int

const (
	KindShop Kind = iota
	KindClient
	KindProduct
	KindOrder
	KindOrderProduct
)

// Kinds returns every kind, parents first.
func Kinds() []Kind {
	return []Kind{KindShop, KindClient, KindProduct, KindOrder, KindOrderProduct}
}

func (k Kind) String() string {
	switch k {
	case KindShop:
		return "shops"
	case KindClient:
		return "clients"
	case KindProduct:
		return "products"
	case KindOrder:
		return "orders"
	case KindOrderProduct:
		return "order_products"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) model() (any, error) {
	switch k {
	case KindShop:
		return &models.Shop{}, nil
	case KindClient:
		return &models.Client{}, nil
	case KindProduct:
		return &models.Product{}, nil
	case KindOrder:
		return &models.Order{}, nil
	case KindOrderProduct:
		return &models.OrderProduct{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}
