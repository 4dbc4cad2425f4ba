package catalog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetStoreCatalog godoc
// @Summary Catalog page
// @Description Sorted, filtered page of 12 products with sidebar facets.
// @Description Select params are passed as param[<name>]=<value> (repeatable),
// @Description unit params as min[<name>]=<n> and max[<name>]=<n>.
// @Tags Storefront - Catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param sort query string false "Sort order" Enums(low_price, high_price)
// @Param categories query string false "Comma separated category ids"
// @Param vendor query string false "Comma separated vendors"
// @Param minPrice query number false "Minimum display price"
// @Param maxPrice query number false "Maximum display price"
// @Param search query string false "Search text"
// @Success 200 {object} models.ApiResponse{data=models.CatalogPage}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/catalog [get]
func GetStoreCatalog(c *gin.Context) {
	// Step 1: Parse query
	query, err := ParseCatalogQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid catalog query", err))
		return
	}

	// Step 2: Load snapshot
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch catalog", err)
		return
	}

	// Step 3: Filter and paginate
	page := services.QueryCatalog(snap, query)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Catalog retrieved successfully", page))
}
