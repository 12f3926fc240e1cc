package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-datawriter/internal/models"
)

// GrossThreshold is the gross value an order must exceed to be reported.
var GrossThreshold = decimal.NewFromInt(100)

var ErrNilStore = errors.New("services: nil store")

// OrderReader loads orders with their items and products.
type OrderReader interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// ReportService computes the payment method report.
type ReportService struct {
	orders OrderReader
}

// NewReportService returns ErrNilStore when orders is nil.
func NewReportService(orders OrderReader) (*ReportService, error) {
	if orders == nil {
		return nil, ErrNilStore
	}
	return &ReportService{orders: orders}, nil
}

// ComputeReports returns one report per payment method, in declaration order.
func (s *ReportService) ComputeReports(ctx context.Context) ([]models.OrderReport, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReports(orders), nil
}

// BuildReports groups orders by payment method, keeping only those whose
// gross value exceeds GrossThreshold. Every method gets a record, even
// when no order qualifies.
func BuildReports(orders []models.Order) []models.OrderReport {
	methods := models.PaymentMethods()
	reports := make([]models.OrderReport, len(methods))
	index := make(map[models.PaymentMethod]int, len(methods))
	for i, m := range methods {
		reports[i] = models.OrderReport{PaymentMethod: m, TotalGrossValue: decimal.Zero}
		index[m] = i
	}

	for _, o := range orders {
		idx, ok := index[o.PaymentMethod]
		if !ok {
			continue
		}
		gross := o.GrossValue()
		if !gross.GreaterThan(GrossThreshold) {
			continue
		}
		reports[idx].OrdersCount++
		reports[idx].TotalGrossValue = reports[idx].TotalGrossValue.Add(gross)
	}
	return reports
}
