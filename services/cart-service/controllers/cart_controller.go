package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	awspkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/pkg/eventbus"
	"github.com/yashrajoria/shop-backend/services/cart-service/models"
)

// CartRepository is the slice of the store the controller needs.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

// DiscountGetter looks up the amount to subtract from a unit price.
type DiscountGetter interface {
	GetDiscount(ctx context.Context, productName string) (decimal.Decimal, error)
}

type CartController struct {
	Repo      CartRepository
	Discounts DiscountGetter
	Publisher eventbus.Publisher
	Metrics   *awspkg.MetricsClient
	Log       *zap.Logger

	// DiscountTimeout is the shared budget for all per-item discount
	// lookups within one cart update.
	DiscountTimeout time.Duration
}

func NewCartController(repo CartRepository, discounts DiscountGetter, publisher eventbus.Publisher, metrics *awspkg.MetricsClient, log *zap.Logger) *CartController {
	return &CartController{
		Repo:            repo,
		Discounts:       discounts,
		Publisher:       publisher,
		Metrics:         metrics,
		Log:             log,
		DiscountTimeout: 5 * time.Second,
	}
}

// GetCart returns the stored cart, or an empty one when none exists.
func (cc *CartController) GetCart(c *gin.Context) {
	userID := c.Param("user_id")

	cart, err := cc.Repo.GetCart(c.Request.Context(), userID)
	if err != nil {
		cc.Log.Error("get cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to get cart"})
		return
	}

	if cart == nil {
		cart = models.NewCart(userID)
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateCart replaces the user's cart wholesale. Every line item is repriced
// through the discount service before the cart is persisted; if any lookup
// fails, nothing is stored and the caller may retry.
func (cc *CartController) UpdateCart(c *gin.Context) {
	var cart models.Cart
	if err := c.ShouldBindJSON(&cart); err != nil {
		cc.Log.Warn("invalid cart payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := cc.applyDiscounts(c.Request.Context(), cart.Items); err != nil {
		cc.Log.Error("discount lookup failed, cart not saved",
			zap.String("user_id", cart.UserID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "discount service unavailable"})
		return
	}

	if err := cc.Repo.SaveCart(c.Request.Context(), &cart); err != nil {
		cc.Log.Error("failed to save cart", zap.String("user_id", cart.UserID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     cart.UserID,
		"items":       cart.Items,
		"total_price": cart.TotalPrice(),
		"updated_at":  cart.UpdatedAt,
	})
}

// applyDiscounts reprices items concurrently under one shared timeout. There
// is no ordering dependency between items; the first failure cancels the
// rest and aborts the whole update so partially priced carts never commit.
func (cc *CartController) applyDiscounts(ctx context.Context, items []models.CartItem) error {
	ctx, cancel := context.WithTimeout(ctx, cc.DiscountTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for i := range items {
		g.Go(func() error {
			amount, err := cc.Discounts.GetDiscount(ctx, items[i].ProductName)
			if err != nil {
				return err
			}
			price := items[i].Price.Sub(amount)
			if price.IsNegative() {
				// A discount larger than the price clamps to zero.
				price = decimal.Zero
			}
			items[i].Price = price
			return nil
		})
	}
	return g.Wait()
}

// DeleteCart removes the user's cart.
func (cc *CartController) DeleteCart(c *gin.Context) {
	userID := c.Param("user_id")

	if err := cc.Repo.DeleteCart(c.Request.Context(), userID); err != nil {
		cc.Log.Error("failed to delete cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to delete cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
}

// Checkout is the producer half of the checkout handoff:
// read cart -> publish checkout event (durable ack) -> delete cart -> 202.
// Publish failure leaves the cart intact so the client can retry. Delete
// failure after a successful publish is tolerated: the order path is already
// under way and a stale cart only affects presentation.
func (cc *CartController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Log.Warn("invalid checkout payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()

	cart, err := cc.Repo.GetCart(ctx, req.UserID)
	if err != nil {
		cc.Log.Error("checkout: cart lookup failed", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to get cart"})
		return
	}
	if cart == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cart exists for user"})
		return
	}

	event := models.NewCheckoutEvent(req, cart)
	payload, err := json.Marshal(event)
	if err != nil {
		cc.Log.Error("checkout: marshal failed", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build checkout event"})
		return
	}

	if err := cc.Publisher.Publish(ctx, event.UserID, payload); err != nil {
		cc.Log.Error("checkout: publish failed, cart left intact",
			zap.String("user_id", req.UserID),
			zap.String("checkout_id", event.CheckoutID),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to publish checkout event"})
		return
	}

	if err := cc.Repo.DeleteCart(ctx, req.UserID); err != nil {
		// Known inconsistency window: the event is published but the cart
		// survived. Harmless to the order path, so still accept.
		cc.Log.Warn("checkout: cart delete failed after publish",
			zap.String("user_id", req.UserID),
			zap.String("checkout_id", event.CheckoutID),
			zap.Error(err))
	}

	if cc.Metrics != nil && cc.Metrics.IsEnabled() {
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = cc.Metrics.RecordCount(mctx, awspkg.MetricCartCheckouts, map[string]string{"Service": "cart-service"})
		}()
	}

	cc.Log.Info("checkout accepted",
		zap.String("user_id", req.UserID),
		zap.String("checkout_id", event.CheckoutID),
		zap.String("total_price", event.TotalPrice.String()))

	c.JSON(http.StatusAccepted, gin.H{
		"message":     "checkout initiated",
		"checkout_id": event.CheckoutID,
	})
}
