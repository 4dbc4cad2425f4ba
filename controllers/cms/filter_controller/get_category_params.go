package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetCategoryParams godoc
// @Summary Filterable params per category
// @Description Every param found on each category's products, with counts, inferred type
// @Description and whether it is currently enabled in the filter settings
// @Tags CMS - Filter
// @Produce json
// @Success 200 {object} models.ApiResponse{data=map[string]models.CategoryParams}
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/filter/params [get]
func GetCategoryParams(c *gin.Context) {
	params, err := services.GetFilterService().CategoryParams(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to derive category params", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category params retrieved successfully", params))
}
