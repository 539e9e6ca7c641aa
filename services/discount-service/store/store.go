package store

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yashrajoria/shop-backend/services/discount-service/models"
)

// CouponStore is an in-memory coupon table keyed by product name. Lookups
// for unknown products return a zero-amount coupon rather than an error, so
// the cart side can always subtract the result.
type CouponStore struct {
	mu      sync.RWMutex
	coupons map[string]models.Coupon
}

func NewCouponStore() *CouponStore {
	return &CouponStore{coupons: make(map[string]models.Coupon)}
}

// Seed loads the initial coupon table.
func (s *CouponStore) Seed(coupons []models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range coupons {
		s.coupons[s.key(c.ProductName)] = c
	}
}

func (s *CouponStore) key(productName string) string {
	return strings.ToLower(strings.TrimSpace(productName))
}

// Get returns the coupon for a product, or a zero-amount coupon when none
// exists.
func (s *CouponStore) Get(productName string) models.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.coupons[s.key(productName)]; ok {
		return c
	}
	return models.Coupon{ProductName: productName, Amount: decimal.Zero}
}

// Upsert stores a coupon, replacing any existing one for the product.
func (s *CouponStore) Upsert(c models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[s.key(c.ProductName)] = c
}

// Delete removes the coupon for a product. Deleting a missing coupon is not
// an error.
func (s *CouponStore) Delete(productName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.coupons, s.key(productName))
}
