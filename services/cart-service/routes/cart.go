package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yashrajoria/shop-backend/services/cart-service/controllers"
)

func RegisterCartRoutes(r *gin.Engine, controller *controllers.CartController) {
	api := r.Group("/cart")
	{
		api.GET("/:user_id", controller.GetCart)
		api.POST("", controller.UpdateCart)
		api.DELETE("/:user_id", controller.DeleteCart)
		api.POST("/checkout", controller.Checkout)
	}
}
