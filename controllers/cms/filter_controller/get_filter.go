package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetFilter godoc
// @Summary Stored filter settings
// @Tags CMS - Filter
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.Filter}
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/filter [get]
func GetFilter(c *gin.Context) {
	filter, err := services.GetFilterService().Get(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch filter settings", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter settings retrieved successfully", filter))
}
