package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/config"
)

const authCookie = "auth_token"

// setAuthCookie stores the token in an HttpOnly cookie; maxAge < 0 deletes it
func setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		authCookie,
		token,
		maxAge,
		"/",
		"",
		config.App.IsProduction(),
		true,
	)
}
