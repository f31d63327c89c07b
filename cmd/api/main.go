package main

import (
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/kalam-platform/app-analytics/docs"
	"github.com/kalam-platform/app-analytics/internal/api/routes"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/observability"
)

// @title           App Analytics API
// @version         1.0
// @description     Estimated engagement trends, content distributions and summaries for the Kalam platform role dashboards

// @contact.name   Kalam Platform
// @contact.url    https://kalam.example.org

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	observability.InitTracer(cfg, "api")
	defer observability.ShutdownTracer()

	r := routes.SetupRouter(cfg)

	log.Printf("Server listening on port %s", cfg.ServerPort)
	err := r.Run(":" + cfg.ServerPort)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
