package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// AdminAuthMiddleware validates the token and lets through only callers whose
// claims carry isAdmin
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		if !requireAdmin(c) {
			return
		}
		c.Next()
	}
}

func requireAdmin(c *gin.Context) bool {
	isAdmin, _ := c.Get(ctxIsAdmin)
	if admin, ok := isAdmin.(bool); ok && admin {
		return true
	}
	email, _ := GetUserEmailFromContext(c)
	utils.Log.Warnf("[auth] non-admin %q attempted %s %s", email, c.Request.Method, c.FullPath())
	c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - admin access required"))
	return false
}
