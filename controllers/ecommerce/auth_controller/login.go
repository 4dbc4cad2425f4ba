package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/config"
	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// Login godoc
// @Summary Login
// @Description Verifies email and password and returns a JWT, also set as the auth_token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Invalid email or password"
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	auth, err := services.GetUserService().Login(c.Request.Context(), req)
	if err != nil {
		utils.Log.Debugf("[auth.login] failed for %s: %v", req.Email, err)
		httputil.AbortWithError(c, "Invalid email or password", err)
		return
	}

	setAuthCookie(c, auth.Token, int(config.App.JWTExpiry.Seconds()))
	utils.Log.Infof("[auth.login] success: %s", auth.User.Email)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", auth))
}
