package routes

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalam-platform/app-analytics/internal/api/handlers"
	"github.com/kalam-platform/app-analytics/internal/cms"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/insights"
	middlewares "github.com/kalam-platform/app-analytics/internal/middleware"
	"github.com/kalam-platform/app-analytics/internal/services"
	"github.com/kalam-platform/app-analytics/internal/typesense"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestTiming())

	cmsClient := cms.NewClient(cfg.CMS)
	typesenseClient := typesense.NewClient(cfg)
	narrator := insights.NewNarrator(context.Background(), cfg)

	if typesenseClient.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := typesenseClient.EnsureCollection(ctx); err != nil {
			log.Printf("[routes] content index unavailable, search will fail until it recovers: %v", err)
		} else if _, err := typesenseClient.LoadSynonyms(ctx, typesense.DefaultSynonyms); err != nil {
			log.Printf("[routes] %v", err)
		}
		cancel()
	}

	dashboard := services.NewDashboardService(cmsClient, cfg.Analytics).
		WithIndexer(typesenseClient).
		WithNarrator(narrator)
	dashboard.Cache().StartCleanupRoutine(time.Minute)

	analyticsHandler := handlers.NewAnalyticsHandler(dashboard)
	contentHandler := handlers.NewContentHandler(typesenseClient, dashboard)
	healthHandler := handlers.NewHealthHandler(cmsClient, typesenseClient, narrator)
	reindexLock := middlewares.NewReindexLock()

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api/v1")
	api.Use(middlewares.ExtractUserContext())
	api.Use(middlewares.JWTAuthMiddleware())
	{
		dashboards := api.Group("/analytics/:role")
		dashboards.Use(middlewares.RequireDashboardAccess())
		{
			dashboards.GET("/trend", analyticsHandler.Trend)
			dashboards.GET("/distribution", analyticsHandler.Distribution)
			dashboards.GET("/summary", analyticsHandler.Summary)
			dashboards.GET("/insights", analyticsHandler.Insights)
		}

		api.GET("/content/search", middlewares.RequireRole(middlewares.RoleAdmin), contentHandler.Search)

		admin := api.Group("/admin")
		admin.Use(middlewares.RequireRole(middlewares.RoleAdmin))
		{
			admin.GET("/facets/:field", contentHandler.Facets)
			admin.POST("/reindex", reindexLock.Exclusive(), contentHandler.Reindex)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
