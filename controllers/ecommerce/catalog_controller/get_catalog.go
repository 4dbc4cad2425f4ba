package catalog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// CatalogCacheControl lets CDNs serve the full catalog for ten minutes
const CatalogCacheControl = "public, max-age=600, stale-while-revalidate=300"

// GetCatalog godoc
// @Summary Full product catalog
// @Description Every product of the current catalog snapshot as a bare JSON array
// @Tags Storefront - Catalog
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string
// @Router /api/catalog [get]
func GetCatalog(c *gin.Context) {
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		utils.Log.Errorf("❌ Failed to fetch catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch catalog",
			"error":   err.Error(),
		})
		return
	}

	c.Header("Cache-Control", CatalogCacheControl)
	c.JSON(http.StatusOK, snap.Products)
}
