package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yashrajoria/shop-backend/services/order-service/cqrs"
	"github.com/yashrajoria/shop-backend/services/order-service/models"
	repositories "github.com/yashrajoria/shop-backend/services/order-service/repository"
)

const CheckoutOrderCommandName = "order.checkout"

// CheckoutOrderCommand carries everything needed to create an order. It is
// built from a consumed checkout event and holds no reference to the wire
// payload.
type CheckoutOrderCommand struct {
	CheckoutID string
	UserID     string
	TotalPrice decimal.Decimal
	Items      []models.CheckoutItem
	Shipping   models.ShippingDetails
	Payment    models.PaymentDetails
}

func (CheckoutOrderCommand) CommandName() string { return CheckoutOrderCommandName }

// CheckoutOrderResult reports the order the command resolved to. Duplicate
// is true when the order already existed and nothing was written.
type CheckoutOrderResult struct {
	OrderID   uuid.UUID
	Duplicate bool
}

// CheckoutOrderHandler creates one order per checkout id. Redeliveries of
// the same event resolve to the existing order instead of a second insert.
type CheckoutOrderHandler struct {
	Repo repositories.OrderRepository
}

func NewCheckoutOrderHandler(repo repositories.OrderRepository) *CheckoutOrderHandler {
	return &CheckoutOrderHandler{Repo: repo}
}

func (h *CheckoutOrderHandler) Handle(ctx context.Context, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(CheckoutOrderCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T for %s", cmd, CheckoutOrderCommandName)
	}

	// Cheap path first: a redelivered event usually finds its order here.
	existing, err := h.Repo.FindByCheckoutID(ctx, c.CheckoutID)
	if err != nil {
		return nil, fmt.Errorf("lookup order by checkout id: %w", err)
	}
	if existing != nil {
		return CheckoutOrderResult{OrderID: existing.ID, Duplicate: true}, nil
	}

	order := &models.Order{
		ID:            uuid.New(),
		CheckoutID:    c.CheckoutID,
		UserID:        c.UserID,
		TotalPrice:    c.TotalPrice,
		FirstName:     c.Shipping.FirstName,
		LastName:      c.Shipping.LastName,
		EmailAddress:  c.Shipping.EmailAddress,
		AddressLine:   c.Shipping.AddressLine,
		Country:       c.Shipping.Country,
		State:         c.Shipping.State,
		ZipCode:       c.Shipping.ZipCode,
		CardName:      c.Payment.CardName,
		CardNumber:    c.Payment.CardNumber,
		Expiration:    c.Payment.Expiration,
		PaymentMethod: c.Payment.PaymentMethod,
	}
	for _, item := range c.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	if err := h.Repo.Create(ctx, order); err != nil {
		// Two consumers raced the same checkout id; the unique index let
		// exactly one insert through. Resolve to the winner's order.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := h.Repo.FindByCheckoutID(ctx, c.CheckoutID)
			if findErr != nil {
				return nil, fmt.Errorf("resolve duplicate checkout id: %w", findErr)
			}
			if winner != nil {
				return CheckoutOrderResult{OrderID: winner.ID, Duplicate: true}, nil
			}
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return CheckoutOrderResult{OrderID: order.ID}, nil
}
