package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diewo77/go-datawriter/internal/validation"
)

var one = decimal.NewFromInt(1)

// Product is a sellable item identified by a globally unique code.
type Product struct {
	ProductCode uuid.UUID       `gorm:"type:uuid;primaryKey" json:"product_code"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	VAT         decimal.Decimal `gorm:"column:vat;type:decimal(5,4);not null;default:0" json:"vat"` // e.g. 0.23 for 23%

	Items []OrderProduct `gorm:"foreignKey:ProductCode;references:ProductCode" json:"-"`
}

// PriceWithVAT returns the gross unit price, price * (1 + vat).
func (p *Product) PriceWithVAT() decimal.Decimal {
	return p.Price.Mul(one.Add(p.VAT))
}

// Validate reports field invariants broken by the product.
func (p *Product) Validate() validation.Violations {
	v := validation.Violations{}
	if p.ProductCode == uuid.Nil {
		v["product_code"] = "required"
	}
	validation.PositiveDecimal("price", p.Price, v)
	validation.MaxDecimalPlaces("price", p.Price, 2, v)
	validation.RangeDecimal("vat", p.VAT, decimal.Zero, one, v)
	return v
}
