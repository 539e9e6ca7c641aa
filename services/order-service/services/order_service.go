package services

import (
	"context"

	"github.com/yashrajoria/shop-backend/services/order-service/models"
	repositories "github.com/yashrajoria/shop-backend/services/order-service/repository"
)

// OrderService serves the read side. Writes happen only through the
// checkout command handler.
type OrderService struct {
	Repo repositories.OrderRepository
}

func NewOrderService(repo repositories.OrderRepository) *OrderService {
	return &OrderService{Repo: repo}
}

// GetUserOrders returns the user's orders oldest first. A user with no
// orders gets an empty slice.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
