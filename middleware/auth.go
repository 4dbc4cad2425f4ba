package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxUserName  = "userName"
	ctxIsAdmin   = "isAdmin"
)

// AuthMiddleware validates the bearer JWT (or the auth_token cookie) and
// stores the caller's identity in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		c.Next()
	}
}

// authenticate aborts the request and reports false when the token is missing or invalid
func authenticate(c *gin.Context) bool {
	token, err := c.Cookie("auth_token")
	if err != nil || token == "" {
		token, err = utils.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - "+err.Error()))
			return false
		}
	}

	claims, err := services.GetJWTService().Verify(token)
	if err != nil {
		utils.Log.Debugf("[auth] invalid token: %v", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
		return false
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserEmail, claims.Email)
	c.Set(ctxUserName, claims.Name)
	c.Set(ctxIsAdmin, claims.IsAdmin)
	return true
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxUserEmail)
	if !exists {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}
