package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingDetails and PaymentDetails are pass-through fields: the cart
// service validates nothing here beyond binding, the order service stores
// them verbatim.
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

// CheckoutRequest is the client payload that triggers a checkout. It is
// validated only for "cart exists"; everything else rides along to the order
// service untouched.
type CheckoutRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	Shipping ShippingDetails `json:"shipping_details"`
	Payment  PaymentDetails  `json:"payment_details"`
}

// CheckoutEvent is the wire payload between the cart and order services —
// the sole coupling artifact. Adding optional fields is safe; removing or
// renaming one is a breaking change, so consumers ignore unknown fields.
type CheckoutEvent struct {
	Event      string          `json:"event"`
	CheckoutID string          `json:"checkout_id"`
	UserID     string          `json:"user_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []CartItem      `json:"items"`
	Shipping   ShippingDetails `json:"shipping_details"`
	Payment    PaymentDetails  `json:"payment_details"`
	Timestamp  time.Time       `json:"timestamp"`
}

const EventCheckoutRequested = "checkout.requested"

// NewCheckoutEvent snapshots the cart into the event. CheckoutID doubles as
// the idempotency key the order side dedupes on when the bus redelivers.
func NewCheckoutEvent(req CheckoutRequest, cart *Cart) CheckoutEvent {
	return CheckoutEvent{
		Event:      EventCheckoutRequested,
		CheckoutID: uuid.NewString(),
		UserID:     req.UserID,
		TotalPrice: cart.TotalPrice(),
		Items:      cart.Items,
		Shipping:   req.Shipping,
		Payment:    req.Payment,
		Timestamp:  time.Now().UTC(),
	}
}
