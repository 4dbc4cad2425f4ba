package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/middleware"
	"github.com/CopperGroup/JoyFer/models"
)

// GetAdminMe godoc
// @Summary Current admin
// @Description Identity carried by the admin token. Used by the dashboard to check the session on reload
// @Tags CMS - Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /api/v1/admin/me [get]
func GetAdminMe(c *gin.Context) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	email, _ := middleware.GetUserEmailFromContext(c)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin retrieved successfully", gin.H{
		"id":      id,
		"email":   email,
		"isAdmin": true,
	}))
}
