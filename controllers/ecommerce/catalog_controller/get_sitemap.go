package catalog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// GetSitemap godoc
// @Summary Sitemap
// @Description Static pages plus one URL per catalog product
// @Tags Storefront - Catalog
// @Produce xml
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /sitemap.xml [get]
func GetSitemap(c *gin.Context) {
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		utils.Log.Errorf("❌ Sitemap: failed to fetch catalog: %v", err)
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	body, err := services.BuildSitemap(services.GetRegistry().StoreDomain, snap.Products)
	if err != nil {
		utils.Log.Errorf("❌ Sitemap: %v", err)
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	c.Header("Cache-Control", CatalogCacheControl)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
