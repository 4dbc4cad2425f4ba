package cms_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/CopperGroup/JoyFer/controllers/cms/admin_controller"
	"github.com/CopperGroup/JoyFer/middleware"
	"github.com/CopperGroup/JoyFer/services"
)

const (
	adminRateLimit  = 300
	adminRateWindow = time.Minute
)

// SetupAdminRoutes mounts the admin console API. Every route requires an admin
// token, is rate limited per client and has its mutations written to the activity log.
func SetupAdminRoutes(rg *gin.RouterGroup, rdb *redis.Client) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.AdminAuthMiddleware(),
		middleware.RateLimiter(rdb, adminRateLimit, adminRateWindow),
		middleware.ActivityLoggingMiddleware(services.GetActivityLogService()),
	)

	// ════════════════════════════════════════════════════════════
	// Session & Audit
	// ════════════════════════════════════════════════════════════
	admin.GET("/me", admin_controller.GetAdminMe)
	admin.GET("/activity-logs", admin_controller.GetActivityLogs)
	admin.POST("/cache/clear", admin_controller.ClearCatalogCache)

	// ════════════════════════════════════════════════════════════
	// Resources
	// ════════════════════════════════════════════════════════════
	SetupProductRoutes(admin)
	SetupCategoryRoutes(admin)
	SetupFilterRoutes(admin)
	SetupFeedRoutes(admin)
	SetupCustomerRoutes(admin)
	SetupAnalyticsRoutes(admin)
}
