package models

import "github.com/diewo77/go-datawriter/internal/validation"

// Client represents a customer and the address orders are delivered to.
type Client struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Street   string `gorm:"size:255;not null" json:"street"`
	City     string `gorm:"size:100;not null" json:"city"`
	PostCode string `gorm:"size:20;not null" json:"post_code"`

	Orders []Order `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
}

// Validate reports field invariants broken by the client.
func (c *Client) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("street", c.Street, v)
	validation.Required("city", c.City, v)
	validation.Required("post_code", c.PostCode, v)
	return v
}
