package analytics_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetAnalyticsOverview godoc
// @Summary Catalog overview
// @Description Product, availability, vendor and category counters of the current catalog snapshot
// @Tags CMS - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.CatalogOverview}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/analytics/overview [get]
func GetAnalyticsOverview(c *gin.Context) {
	snap, err := services.GetCatalogService().FetchCatalog(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch analytics", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Analytics retrieved successfully", services.SummarizeCatalog(snap)))
}
