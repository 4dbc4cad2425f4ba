package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetActivityLogs godoc
// @Summary Admin activity log
// @Description Mutations made through the admin API, newest first
// @Tags CMS - Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 20, max: 100)"
// @Param resource_type query string false "product, category, filter, feed, client or catalog"
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLog}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/activity-logs [get]
func GetActivityLogs(c *gin.Context) {
	page, limit := httputil.Pagination(c, 20)

	logs, total, err := services.GetActivityLogService().List(c.Request.Context(), page, limit, c.Query("resource_type"))
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch activity logs", err)
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs retrieved successfully", logs,
		models.NewPagination(page, limit, total)))
}
