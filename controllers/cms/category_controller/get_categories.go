package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetCategories godoc
// @Summary List category properties
// @Description One row per category with product count, total value and average price
// @Tags CMS - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryProperties}
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories [get]
func GetCategories(c *gin.Context) {
	rows, err := services.GetCategoryService().ListProperties(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories retrieved successfully", rows))
}
