package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/cms/analytics_controller"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/overview", analytics_controller.GetAnalyticsOverview)
	}
}
