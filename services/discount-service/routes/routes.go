package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yashrajoria/shop-backend/services/discount-service/controllers"
)

func RegisterDiscountRoutes(r *gin.Engine, controller *controllers.DiscountController) {
	api := r.Group("/discounts")
	{
		api.GET("/:product_name", controller.GetDiscount)
		api.PUT("", controller.UpsertDiscount)
		api.DELETE("/:product_name", controller.DeleteDiscount)
	}
}
