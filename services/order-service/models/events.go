package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutEvent is the order side's view of the wire payload published by
// the cart service. Unknown fields in the payload are ignored, so the cart
// side may add optional fields without breaking this consumer.
type CheckoutEvent struct {
	Event      string          `json:"event"`
	CheckoutID string          `json:"checkout_id"`
	UserID     string          `json:"user_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []CheckoutItem  `json:"items"`
	Shipping   ShippingDetails `json:"shipping_details"`
	Payment    PaymentDetails  `json:"payment_details"`
	Timestamp  time.Time       `json:"timestamp"`
}

type CheckoutItem struct {
	ProductName string          `json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type ShippingDetails struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	AddressLine  string `json:"address_line"`
	Country      string `json:"country"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

type PaymentDetails struct {
	CardName      string `json:"card_name"`
	CardNumber    string `json:"card_number"`
	Expiration    string `json:"expiration"`
	CVV           string `json:"cvv"`
	PaymentMethod int    `json:"payment_method"`
}
