package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yashrajoria/shop-backend/services/order-service/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// FindByUserID returns all orders for a user in insertion order.
	// An unknown user yields an empty slice, not an error.
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)

	// FindByCheckoutID returns (nil, nil) when no order exists for the key.
	FindByCheckoutID(ctx context.Context, checkoutID string) (*models.Order, error)

	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, order *models.Order) error
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByCheckoutID(ctx context.Context, checkoutID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("checkout_id = ?", checkoutID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	// Associated OrderItems are inserted in the same transaction.
	return r.db.WithContext(ctx).Create(order).Error
}
