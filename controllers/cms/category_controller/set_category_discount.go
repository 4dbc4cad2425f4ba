package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// SetCategoryDiscount godoc
// @Summary Apply a category discount
// @Description Sets priceToShow of every product in the category to price minus the percentage
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body models.CategoryDiscountRequest true "Discount percentage"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id}/discount [post]
func SetCategoryDiscount(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "category")
	if !ok {
		return
	}

	var req models.CategoryDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	if err := services.GetCategoryService().SetDiscount(c.Request.Context(), id, req.Percentage); err != nil {
		httputil.AbortWithError(c, "Failed to apply discount", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Discount applied successfully", gin.H{"percentage": req.Percentage}))
}
