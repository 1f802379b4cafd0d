package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/retaildash/sales-backend-go/internal/api/handlers"
	"github.com/retaildash/sales-backend-go/internal/api/middleware"
	"github.com/retaildash/sales-backend-go/internal/config"
	"github.com/retaildash/sales-backend-go/internal/core/dataset"
	"github.com/retaildash/sales-backend-go/internal/core/metrics"
	"github.com/retaildash/sales-backend-go/internal/websocket"
	"github.com/sirupsen/logrus"
)

// NewRouter creates and configures the main HTTP router
func NewRouter(cfg *config.Config, ds *dataset.Service, logger *logrus.Logger, collector metrics.Collector, wsHub *websocket.Hub) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.ErrorResponseMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Security.EnableCORS {
		router.Use(middleware.CORSMiddleware())
	}
	if cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware(collector))
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimit, cfg.Security.RateLimitBurst)
	router.Use(rateLimiter.RateLimitMiddleware())

	h := handlers.NewHandlers(cfg, ds, logger, collector, wsHub)

	// Public routes
	router.GET("/health", h.Health)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// WebSocket endpoint for dataset reload notifications
	if cfg.WebSocket.Enabled && wsHub != nil {
		router.GET("/ws", h.WebSocketHandler(wsHub))
	}

	// Raw dataset endpoint, kept on the legacy path the dashboard fetches
	router.GET("/api/data", h.GetData)

	// API v1 routes; all accept filter criteria as query parameters
	api := router.Group("/api/v1")
	{
		api.GET("/orders", h.GetOrders)
		api.GET("/summary", h.GetSummary)

		filters := api.Group("/filters")
		{
			filters.GET("/options", h.GetFilterOptions)
		}

		charts := api.Group("/charts")
		{
			charts.GET("/categories", h.GetCategoryChart)
			charts.GET("/sales-trend", h.GetSalesTrend)
			charts.GET("/top-countries", h.GetTopCountries)
			charts.GET("/countries", h.GetAllCountries)
			charts.GET("/segments", h.GetSegmentChart)
			charts.GET("/ship-modes", h.GetShipModeChart)
			charts.GET("/sub-categories", h.GetSubCategoryChart)
		}

		insights := api.Group("/insights")
		{
			insights.GET("/top-product", h.GetTopProduct)
			insights.GET("/top-customer", h.GetTopCustomer)
		}

		exports := api.Group("/export")
		{
			exports.GET("/csv", h.ExportCSV)
			exports.GET("/json", h.ExportJSON)
		}

		ds := api.Group("/dataset")
		{
			ds.POST("/reload", h.ReloadDataset)
		}

		if cfg.WebSocket.Enabled && wsHub != nil {
			ws := api.Group("/websocket")
			{
				ws.GET("/stats", h.GetWebSocketStats(wsHub))
			}
		}
	}

	return router
}
