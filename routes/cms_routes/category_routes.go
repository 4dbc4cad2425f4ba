package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/cms/category_controller"
)

func SetupCategoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/categories")
	{
		category.GET("", category_controller.GetCategories)
		category.GET("/:id", category_controller.GetCategoryByID)
		category.POST("", category_controller.CreateCategory)
		category.PATCH("/:id", category_controller.RenameCategory)
		category.POST("/:id/move", category_controller.MoveProducts)
		category.POST("/:id/discount", category_controller.SetCategoryDiscount)
		category.DELETE("/:id", category_controller.DeleteCategory)
	}
}
