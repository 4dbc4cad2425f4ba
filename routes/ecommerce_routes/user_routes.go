package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/ecommerce/auth_controller"
)

func SetupUserRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/signup", auth_controller.Signup)
	}
}
