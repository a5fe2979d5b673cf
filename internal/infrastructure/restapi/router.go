package restapi

import (
	"masonry_tracker/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires the API, health, metrics and optional Swagger routes.
func SetupRouter(statsHandler *StatsHandler, networkHandler *NetworkHandler, cfg configloader.ServerConfig) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/stats", statsHandler.GetStatsHandler)
		v1.GET("/networks", networkHandler.ListNetworksHandler)
		v1.GET("/networks/:identifier", networkHandler.GetNetworkHandler)
	}

	router.GET("/healthz", HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", cfg.SwaggerFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
