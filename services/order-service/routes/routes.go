package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yashrajoria/shop-backend/services/order-service/controllers"
)

func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	orders := r.Group("/orders")
	{
		orders.GET("/:user_id", oc.GetUserOrders)
	}
}
