package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetProductByID godoc
// @Summary Get product
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [get]
func GetProductByID(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "product")
	if !ok {
		return
	}

	product, err := services.GetProductService().GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.AbortWithError(c, "Product not found", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product retrieved successfully", product))
}
