// @title JoyFer Storefront API
// @version 1.0
// @description Catalog, feed import and admin console backend of the JoyFer furniture store
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/CopperGroup/JoyFer/config"
	_ "github.com/CopperGroup/JoyFer/docs"
	"github.com/CopperGroup/JoyFer/metrics"
	"github.com/CopperGroup/JoyFer/routes/cms_routes"
	"github.com/CopperGroup/JoyFer/routes/ecommerce_routes"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		utils.Log.Fatalf("❌ Failed to load config: %v", err)
	}
	utils.ConfigureLogger(settings.IsProduction())
	utils.Log.Infof("⚙️ Settings: %s", settings)

	// Connect to DB
	if err := config.InitDB(settings); err != nil {
		utils.Log.Fatalf("❌ %v", err)
	}
	defer config.CloseDB()

	// Redis connection
	if err := config.ConnectRedis(settings); err != nil {
		utils.Log.Fatalf("❌ %v", err)
	}
	defer config.CloseRedis()

	// ✅ Initialize JWT Service
	if err := services.InitJWTService(settings.JWTSecret, settings.JWTExpiry); err != nil {
		utils.Log.Fatalf("❌ Failed to initialize JWT service: %v", err)
	}
	utils.Log.Info("✅ JWT Service initialized")

	services.Init(services.NewRegistry(config.CmsGorm, config.RedisClient, services.Options{
		ChunkSize:   settings.CatalogChunkSize,
		L1TTL:       settings.CatalogL1TTL,
		LockTTL:     settings.CatalogLockTTL,
		FilterDelay: settings.FilterDelay,
		StoreDomain: settings.StoreDomain,
	}))

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger(), metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     settings.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Retry-After"},
	}))

	// Register API routes
	api := router.Group("/api/v1")
	cms_routes.SetupAdminRoutes(api, config.RedisClient)
	ecommerce_routes.SetupAuthRoutes(api)
	ecommerce_routes.SetupUserRoutes(api)
	ecommerce_routes.SetupStorefrontRoutes(api)
	ecommerce_routes.SetupLegacyRoutes(router)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.Infof("🚀 Server is running on http://localhost:%s", settings.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.Errorf("❌ Forced shutdown: %v", err)
	}
}
