package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/models"
)

// Logout godoc
// @Summary Logout
// @Description Clears the auth_token cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/auth/logout [post]
func Logout(c *gin.Context) {
	setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}
