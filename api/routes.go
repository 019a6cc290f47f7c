package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mediawatch/labeling-api/api/auth"
	"github.com/mediawatch/labeling-api/api/devices"
	"github.com/mediawatch/labeling-api/api/events"
	"github.com/mediawatch/labeling-api/api/health"
	"github.com/mediawatch/labeling-api/api/labels"
	"github.com/mediawatch/labeling-api/api/middleware"
	"github.com/mediawatch/labeling-api/api/reports"
	"github.com/mediawatch/labeling-api/api/types"
	"github.com/mediawatch/labeling-api/api/version"
	_ "github.com/mediawatch/labeling-api/docs/swagger"
	authService "github.com/mediawatch/labeling-api/internal/services/auth"
	devicesService "github.com/mediawatch/labeling-api/internal/services/devices"
	eventsService "github.com/mediawatch/labeling-api/internal/services/events"
	labelsService "github.com/mediawatch/labeling-api/internal/services/labels"
	reportsService "github.com/mediawatch/labeling-api/internal/services/reports"
	"github.com/mediawatch/labeling-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// The remaining routes all need the database
	if deps.DB == nil || deps.DB.DB == nil {
		return nil
	}

	initializeServices(deps, cfg)

	rateLimit := rateLimitMiddleware(cfg, rateLimiters, cleanupStop, cleanupInitialized)
	authenticate := middleware.Authenticate(deps.AuthService)
	requireAdmin := middleware.RequireAdmin()

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Auth routes: login is public, user management is admin-only
	authGroup := v1.Group("/auth")
	authGroup.Use(rateLimit)
	auth.RegisterRoutes(authGroup, deps, authenticate, requireAdmin)

	// Device registry is admin-only
	deviceGroup := v1.Group("/devices")
	deviceGroup.Use(rateLimit, authenticate, requireAdmin)
	devices.RegisterRoutes(deviceGroup, deps)

	// Event browsing requires authentication
	eventGroup := v1.Group("/events")
	eventGroup.Use(rateLimit, authenticate)
	events.RegisterRoutes(eventGroup, deps)

	// Label routes require authentication except the program guide lookup,
	// which stays public for display clients
	labelGroup := v1.Group("/labels")
	labelGroup.Use(rateLimit)
	labels.RegisterRoutes(labelGroup, deps, authenticate)

	// Reports are admin-only
	reportGroup := v1.Group("/reports")
	reportGroup.Use(rateLimit, authenticate, requireAdmin)
	reports.RegisterRoutes(reportGroup, deps)

	return nil
}

// rateLimitMiddleware builds the per-client rate limiter from configuration
func rateLimitMiddleware(cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) gin.HandlerFunc {
	if !cfg.RateLimiting.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	rps := cfg.RateLimiting.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RateLimiting.Burst
	if burst <= 0 {
		burst = 20
	}

	return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst)
}

// initializeServices wires any services that were not injected by the caller
func initializeServices(deps *types.Dependencies, cfg *config.Config) {
	db := deps.DB.DB

	if deps.EventService == nil {
		deps.EventService = eventsService.NewService(eventsService.NewRepository(db))
	}
	if deps.LabelService == nil {
		deps.LabelService = labelsService.NewService(labelsService.NewRepository(db))
	}
	if deps.ReportService == nil {
		deps.ReportService = reportsService.NewService(db)
	}
	if deps.DeviceService == nil {
		deps.DeviceService = devicesService.NewService(devicesService.NewRepository(db))
	}
	if deps.AuthService == nil {
		deps.AuthService = authService.NewService(
			authService.NewRepository(db),
			cfg.Auth.JWTSecret,
			cfg.Auth.TokenTTL,
			cfg.Auth.BcryptCost,
		)
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
