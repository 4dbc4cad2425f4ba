package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// SaveFilter godoc
// @Summary Save filter settings
// @Description Replaces the filter settings. Params must exist on the category's products
// @Description and be of type "select" or "unit-<unit>".
// @Tags CMS - Filter
// @Accept json
// @Produce json
// @Param body body models.SaveFilterRequest true "Enabled params per category id"
// @Success 200 {object} models.ApiResponse{data=models.Filter}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/filter [put]
func SaveFilter(c *gin.Context) {
	var req models.SaveFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	filter, err := services.GetFilterService().Save(c.Request.Context(), req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to save filter settings", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter settings saved successfully", filter))
}
