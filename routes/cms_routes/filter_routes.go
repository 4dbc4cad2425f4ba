package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/cms/filter_controller"
)

func SetupFilterRoutes(rg *gin.RouterGroup) {
	filter := rg.Group("/filter")
	{
		filter.GET("", filter_controller.GetFilter)
		filter.GET("/params", filter_controller.GetCategoryParams)
		filter.PUT("", filter_controller.SaveFilter)
	}
}
