package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// FilterMetadata is what the storefront sidebar needs before the first catalog page
type FilterMetadata struct {
	Settings models.FilterSettings `json:"filterSettings"`
	Delay    int                   `json:"delay"`
}

// GetFilterMetadata godoc
// @Summary Storefront filter settings
// @Description Enabled params per category id and the filter debounce delay in milliseconds
// @Tags Storefront - Catalog
// @Produce json
// @Success 200 {object} models.ApiResponse{data=FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/filter [get]
func GetFilterMetadata(c *gin.Context) {
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch filter settings", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter settings retrieved successfully", FilterMetadata{
		Settings: snap.FilterSettings,
		Delay:    snap.Delay,
	}))
}
