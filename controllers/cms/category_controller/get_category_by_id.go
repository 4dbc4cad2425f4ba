package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetCategoryByID godoc
// @Summary Get category
// @Description Category with its products, total value, average price and average discount
// @Tags CMS - Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse{data=models.CategoryDetails}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [get]
func GetCategoryByID(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "category")
	if !ok {
		return
	}

	details, err := services.GetCategoryService().Get(c.Request.Context(), id)
	if err != nil {
		httputil.AbortWithError(c, "Category not found", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category retrieved successfully", details))
}
