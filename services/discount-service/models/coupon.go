package models

import "github.com/shopspring/decimal"

// Coupon is a flat amount subtracted from a product's unit price.
// Amount is never negative.
type Coupon struct {
	ProductName string          `json:"product_name" binding:"required"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}
