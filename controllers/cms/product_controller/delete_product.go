package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// DeleteProduct godoc
// @Summary Delete product
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "product")
	if !ok {
		return
	}

	if err := services.GetProductService().Delete(c.Request.Context(), id); err != nil {
		httputil.AbortWithError(c, "Failed to delete product", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", gin.H{"id": id}))
}
