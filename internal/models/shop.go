package models

import "github.com/diewo77/go-datawriter/internal/validation"

// Shop is a point of sale orders are placed in.
type Shop struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	Orders []Order `gorm:"foreignKey:ShopID" json:"orders,omitempty"`
}

// Validate reports field invariants broken by the shop.
func (s *Shop) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", s.Name, v)
	return v
}
