package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetStoreProductByID godoc
// @Summary Storefront product
// @Description Single product looked up in the catalog snapshot
// @Tags Storefront - Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/store/catalog/{id} [get]
func GetStoreProductByID(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "product")
	if !ok {
		return
	}

	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch product", err)
		return
	}

	for i := range snap.Products {
		if snap.Products[i].ID == id {
			c.JSON(http.StatusOK, models.SuccessResponse(c, "Product retrieved successfully", snap.Products[i]))
			return
		}
	}
	c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
}
