package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/handlers"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/middleware"
	"github.com/imyashkale/kmsdash/internal/web"
)

// Setup configures and returns the application router
func Setup(
	dashboardHandler *handlers.DashboardHandler,
	logHandler *handlers.LogHandler,
	configHandler *handlers.ConfigHandler,
	commandHandler *handlers.CommandHandler,
	productHandler *handlers.ProductHandler,
	serverHandler *handlers.ServerHandler,
	healthHandler *handlers.HealthHandler,
	collector *metrics.Collector,
) *gin.Engine {

	// Create a new Gin router
	router := gin.Default()

	// Apply CORS middleware globally
	router.Use(middleware.CORS())

	// Dashboard template is compiled into the binary
	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// Dashboard page
	router.GET("/", dashboardHandler.Home)

	// Operational endpoints
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/logs", logHandler.List)
		api.GET("/products", productHandler.List)
		api.GET("/server/config", configHandler.Get)
		api.POST("/server/config", configHandler.Update)
		api.POST("/server/restart", serverHandler.Restart)
		api.POST("/execute_command", commandHandler.Execute)
	}

	return router
}
