package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yashrajoria/shop-backend/services/discount-service/models"
)

func TestGetIsCaseInsensitive(t *testing.T) {
	s := NewCouponStore()
	s.Seed([]models.Coupon{
		{ProductName: "IPhone X", Description: "launch promo", Amount: decimal.NewFromInt(150)},
	})

	c := s.Get("iphone x")

	assert.True(t, c.Amount.Equal(decimal.NewFromInt(150)))
}

func TestGetUnknownProductReturnsZeroCoupon(t *testing.T) {
	s := NewCouponStore()

	c := s.Get("does-not-exist")

	assert.Equal(t, "does-not-exist", c.ProductName)
	assert.True(t, c.Amount.IsZero())
}

func TestUpsertReplacesExistingCoupon(t *testing.T) {
	s := NewCouponStore()
	s.Upsert(models.Coupon{ProductName: "shoes", Amount: decimal.NewFromInt(5)})
	s.Upsert(models.Coupon{ProductName: "Shoes", Amount: decimal.NewFromInt(10)})

	assert.True(t, s.Get("shoes").Amount.Equal(decimal.NewFromInt(10)))
}

func TestDeleteRemovesCoupon(t *testing.T) {
	s := NewCouponStore()
	s.Upsert(models.Coupon{ProductName: "shoes", Amount: decimal.NewFromInt(5)})

	s.Delete("SHOES")

	assert.True(t, s.Get("shoes").Amount.IsZero())
	s.Delete("shoes") // deleting twice is fine
}
