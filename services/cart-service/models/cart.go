package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's cart. Price is the unit price after any
// discount has been applied; it never goes negative.
type CartItem struct {
	ProductName string          `json:"product_name" binding:"required"`
	Color       string          `json:"color,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

type Cart struct {
	UserID    string     `json:"user_id" binding:"required"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns the implicit empty cart served when a user has none stored.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// TotalPrice is always recomputed from the items, never stored.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
