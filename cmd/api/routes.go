package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Weather endpoints
	app.router.GET("/v1/weather", app.handleGetWeather)

	// Location registry endpoints
	app.router.GET("/v1/locations/nearest", app.handleNearestLocation)
	app.router.GET("/v1/locations/search", app.handleSearchLocations)
	app.router.GET("/v1/locations/:slug", app.handleGetLocation)

	// Suitability endpoint
	app.router.GET("/v1/suitability", app.handleGetSuitability)

	// Prometheus metrics
	app.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
