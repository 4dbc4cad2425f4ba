package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/ecommerce/catalog_controller"
	store_category "github.com/CopperGroup/JoyFer/controllers/ecommerce/category_controller"
	store_filter "github.com/CopperGroup/JoyFer/controllers/ecommerce/filter_controller"
	store_product "github.com/CopperGroup/JoyFer/controllers/ecommerce/product_controller"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	catalog := store.Group("/catalog")
	{
		catalog.GET("", catalog_controller.GetStoreCatalog)    // Filtered page
		catalog.GET("/:id", store_product.GetStoreProductByID) // Single product
	}

	store.GET("/categories", store_category.GetStoreCategories)
	store.GET("/filter", store_filter.GetFilterMetadata)
}

// SetupLegacyRoutes mounts the paths the storefront used before the /api/v1 prefix
func SetupLegacyRoutes(router *gin.Engine) {
	router.GET("/api/catalog", catalog_controller.GetCatalog)
	router.GET("/sitemap.xml", catalog_controller.GetSitemap)
	SetupUserRoutes(router.Group("/api"))
}
