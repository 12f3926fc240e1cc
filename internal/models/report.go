package models

import "github.com/shopspring/decimal"

// OrderReport summarizes the qualifying orders of one payment method.
type OrderReport struct {
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	OrdersCount     int             `json:"orders_count"`
	TotalGrossValue decimal.Decimal `json:"total_gross_value"`
}

// OrderInfo is one row of the net total listing.
type OrderInfo struct {
	ID            uint            `json:"id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Street        string          `json:"street"`
	City          string          `json:"city"`
	PostCode      string          `json:"post_code"`
	NetTotal      decimal.Decimal `json:"net_total"`
}
