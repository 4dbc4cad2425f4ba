package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/cms/customer_controller"
)

func SetupCustomerRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", customer_controller.GetCustomers)
		clients.POST("", customer_controller.CreateCustomer)
	}
}
