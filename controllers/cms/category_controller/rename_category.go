package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// RenameCategory godoc
// @Summary Rename category
// @Description Renames the category and every product that references it
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body models.RenameCategoryRequest true "New name"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [patch]
func RenameCategory(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "category")
	if !ok {
		return
	}

	var req models.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	category, err := services.GetCategoryService().Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		httputil.AbortWithError(c, "Failed to rename category", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category renamed successfully", category))
}
