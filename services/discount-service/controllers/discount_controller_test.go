package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashrajoria/shop-backend/services/discount-service/models"
	"github.com/yashrajoria/shop-backend/services/discount-service/store"
)

func newTestRouter() (*gin.Engine, *store.CouponStore) {
	gin.SetMode(gin.TestMode)
	s := store.NewCouponStore()
	dc := NewDiscountController(s, zap.NewNop())
	r := gin.New()
	r.GET("/discounts/:product_name", dc.GetDiscount)
	r.PUT("/discounts", dc.UpsertDiscount)
	r.DELETE("/discounts/:product_name", dc.DeleteDiscount)
	return r, s
}

func TestGetDiscountUnknownProductIsZero(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discounts/unknown", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var coupon models.Coupon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coupon))
	assert.True(t, coupon.Amount.IsZero())
}

func TestUpsertThenGetDiscount(t *testing.T) {
	r, _ := newTestRouter()

	body, _ := json.Marshal(models.Coupon{ProductName: "shoes", Amount: decimal.NewFromInt(10)})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/discounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discounts/shoes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var coupon models.Coupon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coupon))
	assert.True(t, coupon.Amount.Equal(decimal.NewFromInt(10)))
}

func TestUpsertRejectsNegativeAmount(t *testing.T) {
	r, s := newTestRouter()

	body, _ := json.Marshal(models.Coupon{ProductName: "shoes", Amount: decimal.NewFromInt(-5)})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/discounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, s.Get("shoes").Amount.IsZero())
}

func TestDeleteDiscountResetsToZero(t *testing.T) {
	r, s := newTestRouter()
	s.Upsert(models.Coupon{ProductName: "shoes", Amount: decimal.NewFromInt(10)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/discounts/shoes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, s.Get("shoes").Amount.IsZero())
}
