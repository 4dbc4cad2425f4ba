package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// UpdateProduct godoc
// @Summary Update product
// @Description Partial update; only provided fields change
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "product")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	product, err := services.GetProductService().Update(c.Request.Context(), id, req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
