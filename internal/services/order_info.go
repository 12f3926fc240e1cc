package services

import (
	"context"

	"github.com/diewo77/go-datawriter/internal/models"
)

// DefaultCityFilter is the city substring used when none is given.
const DefaultCityFilter = "u"

// OrderInfoReader runs the net total query.
type OrderInfoReader interface {
	OrderInfo(ctx context.Context, citySubstring string) ([]models.OrderInfo, error)
}

// OrderInfoService lists net totals of orders from odd-numbered shops.
type OrderInfoService struct {
	reader OrderInfoReader
}

// NewOrderInfoService returns ErrNilStore when reader is nil.
func NewOrderInfoService(reader OrderInfoReader) (*OrderInfoService, error) {
	if reader == nil {
		return nil, ErrNilStore
	}
	return &OrderInfoService{reader: reader}, nil
}

// OrderInfo returns orders whose client city contains city, or
// DefaultCityFilter when city is empty.
func (s *OrderInfoService) OrderInfo(ctx context.Context, city string) ([]models.OrderInfo, error) {
	if city == "" {
		city = DefaultCityFilter
	}
	return s.reader.OrderInfo(ctx, city)
}
