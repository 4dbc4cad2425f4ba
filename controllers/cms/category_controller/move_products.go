package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// MoveProducts godoc
// @Summary Move products between categories
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param id path string true "Source category ID"
// @Param body body models.MoveProductsRequest true "Target category and products"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id}/move [post]
func MoveProducts(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "category")
	if !ok {
		return
	}

	var req models.MoveProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	if err := services.GetCategoryService().MoveProducts(c.Request.Context(), id, req); err != nil {
		httputil.AbortWithError(c, "Failed to move products", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products moved successfully", gin.H{"moved": len(req.ProductIDs)}))
}
