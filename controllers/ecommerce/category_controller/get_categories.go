package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetStoreCategories godoc
// @Summary Storefront categories
// @Description Categories of the current catalog snapshot with product counts
// @Tags Storefront - Catalog
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CatalogCategory}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/categories [get]
func GetStoreCategories(c *gin.Context) {
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories retrieved successfully", snap.Categories))
}
