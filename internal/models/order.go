package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diewo77/go-datawriter/internal/validation"
)

// PaymentMethod is how an order was paid. Stored as its integer value.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota
	PaymentCreditCard
	PaymentBankTransfer
	PaymentOther
)

var paymentMethodNames = [...]string{
	PaymentCash:         "Cash",
	PaymentCreditCard:   "CreditCard",
	PaymentBankTransfer: "BankTransfer",
	PaymentOther:        "Other",
}

// PaymentMethods returns every payment method in declaration order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentBankTransfer, PaymentOther}
}

// Valid returns true if m is one of the declared payment methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentCash && m <= PaymentOther
}

func (m PaymentMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("PaymentMethod(%d)", int(m))
	}
	return paymentMethodNames[m]
}

// MarshalText encodes the payment method by name.
func (m PaymentMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid payment method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a payment method name.
func (m *PaymentMethod) UnmarshalText(text []byte) error {
	pm, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// ParsePaymentMethod returns the payment method with the given name.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for _, m := range PaymentMethods() {
		if paymentMethodNames[m] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", name)
}

// Order is a purchase made by a client in a shop.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"payment_method"`

	ShopID uint  `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"-"`

	Items []OrderProduct `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// Validate reports field invariants broken by the order.
func (o *Order) Validate() validation.Violations {
	v := validation.Violations{}
	if !o.PaymentMethod.Valid() {
		v["payment_method"] = "invalid"
	}
	if o.ShopID == 0 {
		v["shop_id"] = "required"
	}
	if o.ClientID == 0 {
		v["client_id"] = "required"
	}
	return v
}

// GrossValue sums price * (1 + vat) over the products on the order.
// Quantity is not part of the sum: each product line counts once.
// Items without a loaded product are skipped.
func (o *Order) GrossValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.PriceWithVAT())
	}
	return total
}

// OrderProduct links an order to a product it contains.
type OrderProduct struct {
	OrderID     uint      `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductCode uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_code"`
	Quantity    int       `gorm:"not null" json:"quantity"`

	Order   *Order   `gorm:"foreignKey:OrderID" json:"-"`
	// The product_code foreign key is declared by Product.Items.
	Product *Product `gorm:"foreignKey:ProductCode;references:ProductCode;constraint:-" json:"product,omitempty"`
}

// Validate reports field invariants broken by the association.
func (op *OrderProduct) Validate() validation.Violations {
	v := validation.Violations{}
	if op.OrderID == 0 {
		v["order_id"] = "required"
	}
	if op.ProductCode == uuid.Nil {
		v["product_code"] = "required"
	}
	validation.PositiveInt("quantity", op.Quantity, v)
	return v
}
