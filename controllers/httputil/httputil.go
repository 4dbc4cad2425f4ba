// Package httputil holds the request parsing and error mapping shared by the handlers.
package httputil

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// StatusFor maps service errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, services.ErrInvalidFeed):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrDefaultCategory):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the error envelope. Client errors carry the error text,
// server errors only the message.
func AbortWithError(c *gin.Context, message string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		utils.Log.Errorf("❌ %s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
		c.JSON(status, models.ErrorResponse(c, message))
		return
	}
	c.JSON(status, models.ErrorWithDetail(c, message, err))
}

// ParseIDParam reads the :id path parameter as a UUID and answers 400 when it is not one
func ParseIDParam(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid "+entity+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// Pagination reads page and limit with the given default limit
func Pagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
