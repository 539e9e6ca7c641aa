package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cerrors "github.com/yashrajoria/shop-backend/services/common/errors"
	"github.com/yashrajoria/shop-backend/services/order-service/services"
)

type OrderController struct {
	Service *services.OrderService
	Log     *zap.Logger
}

func NewOrderController(svc *services.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{Service: svc, Log: log}
}

// GetUserOrders handles GET /orders/:user_id.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.Error(cerrors.ErrBadRequest)
		return
	}

	orders, err := oc.Service.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		oc.Log.Error("failed to fetch orders",
			zap.String("user_id", userID),
			zap.Error(err))
		c.Error(cerrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
