package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

const maxLoggedBody = 64 << 10

// pathToResourceType maps admin URL segments to resource types
var pathToResourceType = map[string]string{
	"products":   models.ResourceTypeProduct,
	"categories": models.ResourceTypeCategory,
	"filter":     models.ResourceTypeFilter,
	"feed":       models.ResourceTypeFeed,
	"clients":    models.ResourceTypeClient,
	"cache":      models.ResourceTypeCatalog,
}

var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// ActivityLoggingMiddleware records every admin mutation with its payload and
// outcome. Must be used after AdminAuthMiddleware.
func ActivityLoggingMiddleware(logs *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		verb, mutating := methodToActionVerb[c.Request.Method]
		if !mutating {
			c.Next()
			return
		}

		rawID, _ := GetUserIDFromContext(c)
		adminID, err := uuid.Parse(rawID)
		if err != nil {
			utils.Log.Warnf("[activity-logging] admin id missing from context for %s", c.Request.URL.Path)
			c.Next()
			return
		}
		adminEmail, _ := GetUserEmailFromContext(c)

		resourceType := extractResourceType(c.Request.URL.Path)
		if resourceType == "" {
			c.Next()
			return
		}

		// Step 1: keep a copy of the payload and hand the body back to the handler
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			rest, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), bytes.NewReader(rest)))
		}

		c.Next()

		// Step 2: record the outcome once the handler has written its response
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		defer cancel()
		logs.LogActivity(ctx, services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       verb + "_" + resourceType,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			Body:         body,
			StatusCode:   c.Writer.Status(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.GetHeader("User-Agent"),
		})
	}
}

// extractResourceType finds the last known resource segment of the path
// e.g., "/api/v1/admin/categories/<uuid>/discount" → "category"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if resourceType, ok := pathToResourceType[parts[i]]; ok {
			return resourceType
		}
	}
	return ""
}
