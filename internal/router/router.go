package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/config"
	"github.com/gradstat/placement-backend/internal/handler"
	"github.com/gradstat/placement-backend/internal/middleware"
	"github.com/gradstat/placement-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Chart     *handler.ChartHandler
	Export    *handler.ExportHandler
	Filter    *handler.FilterHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally (export downloads are skipped).
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Filter domain (GET, safe to cache briefly) ────────────────────
	filters := router.Group("/api/v1/filters")
	filters.Use(middleware.CacheControl(300))
	{
		filters.GET("/options", handlers.Filter.Options)
	}

	// ─── Dashboard recompute (POST FilterSelection) ────────────────────
	dashboard := router.Group("/api/v1/dashboard")
	{
		dashboard.POST("", handlers.Dashboard.Summary)
		dashboard.POST("/charts", handlers.Chart.GetAll)
		dashboard.POST("/charts/:name", handlers.Chart.GetByName)
	}

	// ─── Exports (rate limited — PDF rendering is the one costly op) ───
	exportLimiter := middleware.NewRateLimiter(cfg.ExportRatePerMinute, time.Minute)
	exports := router.Group("/api/v1/export")
	exports.Use(exportLimiter.Middleware())
	{
		exports.POST("/pdf", handlers.Export.PDF)
		exports.POST("/csv", handlers.Export.CSV)
	}

	return router
}
