package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the durable record created from a consumed checkout event. It is
// never mutated after creation.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// CheckoutID is the idempotency key carried by the checkout event.
	// The unique index rejects the second insert when the bus redelivers.
	CheckoutID string `gorm:"uniqueIndex;not null" json:"checkout_id"`

	UserID     string          `gorm:"not null;index" json:"user_id"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`

	// Shipping details, stored verbatim from the event.
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	AddressLine  string `json:"address_line"`
	Country      string `json:"country"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`

	// Payment details, stored verbatim from the event.
	CardName      string `json:"card_name"`
	CardNumber    string `json:"card_number"`
	Expiration    string `json:"expiration"`
	PaymentMethod int    `json:"payment_method"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
}
