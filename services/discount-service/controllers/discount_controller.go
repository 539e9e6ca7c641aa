package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yashrajoria/shop-backend/services/discount-service/models"
	"github.com/yashrajoria/shop-backend/services/discount-service/store"
)

type DiscountController struct {
	Store *store.CouponStore
	Log   *zap.Logger
}

func NewDiscountController(s *store.CouponStore, log *zap.Logger) *DiscountController {
	return &DiscountController{Store: s, Log: log}
}

// GetDiscount returns the discount amount for a product name. Unknown
// products get amount zero so callers never need a not-found branch.
func (dc *DiscountController) GetDiscount(c *gin.Context) {
	productName := c.Param("product_name")
	coupon := dc.Store.Get(productName)
	c.JSON(http.StatusOK, coupon)
}

// UpsertDiscount creates or replaces a coupon.
func (dc *DiscountController) UpsertDiscount(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if coupon.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
		return
	}

	dc.Store.Upsert(coupon)
	dc.Log.Info("coupon upserted",
		zap.String("product_name", coupon.ProductName),
		zap.String("amount", coupon.Amount.String()))
	c.JSON(http.StatusOK, coupon)
}

// DeleteDiscount removes a coupon.
func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	productName := c.Param("product_name")
	dc.Store.Delete(productName)
	c.JSON(http.StatusOK, gin.H{"message": "coupon deleted"})
}
