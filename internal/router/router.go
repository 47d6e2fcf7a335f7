package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/baokaotong/baokao-backend/internal/config"
	"github.com/baokaotong/baokao-backend/internal/handler"
	"github.com/baokaotong/baokao-backend/internal/middleware"
	"github.com/baokaotong/baokao-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Major   *handler.MajorHandler
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response carries one.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Model-backed routes pay for an external inference round trip;
	// rate-limit them per IP.
	aiLimiter := middleware.NewRateLimiter(30, time.Minute)

	catalog := router.Group("/catalog")
	{
		// The hierarchy only changes on re-import; let clients cache it.
		catalog.GET("/hierarchy", middleware.CacheControl(300), handlers.Catalog.GetHierarchy)
		catalog.GET("/search", handlers.Catalog.Search)

		catalog.GET("/major/:code", aiLimiter.Middleware(), handlers.Major.GetDetail)
		catalog.POST("/major/qa", aiLimiter.Middleware(), handlers.Major.AskQuestion)
	}

	return router
}
