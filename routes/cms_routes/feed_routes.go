package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/cms/feed_controller"
)

func SetupFeedRoutes(rg *gin.RouterGroup) {
	feed := rg.Group("/feed")
	{
		feed.POST("/preview", feed_controller.PreviewFeed)
		feed.POST("/proceed", feed_controller.ProceedFeed)
	}

	configs := feed.Group("/configs")
	{
		configs.GET("", feed_controller.GetFeedConfigs)
		configs.GET("/default", feed_controller.GetDefaultFeedConfig)
		configs.GET("/:name", feed_controller.GetFeedConfig)
		configs.PUT("", feed_controller.SaveFeedConfig)
		configs.DELETE("/:name", feed_controller.DeleteFeedConfig)
	}
}
