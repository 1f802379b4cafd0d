package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retaildash/sales-backend-go/internal/api"
	"github.com/retaildash/sales-backend-go/internal/config"
	"github.com/retaildash/sales-backend-go/internal/core/dataset"
	"github.com/retaildash/sales-backend-go/internal/core/metrics"
	"github.com/retaildash/sales-backend-go/internal/websocket"
	"github.com/retaildash/sales-backend-go/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger.SetLevel(log, cfg.Logging.Level)

	// Metrics collector
	var collector metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewPrometheusCollector(cfg.Metrics.Prefix)
	}

	// Create WebSocket hub
	var wsHub *websocket.Hub
	if cfg.WebSocket.Enabled {
		wsHub = websocket.NewHub(log, time.Duration(cfg.WebSocket.HeartbeatInterval)*time.Second)
		go wsHub.Run()
	}

	// Initialize dataset service
	ds := dataset.NewService(cfg.Dataset.Path, log)
	if wsHub != nil {
		ds.Subscribe(wsHub)
	}

	// Initial load is fetch-or-fail: the server still starts so the
	// data endpoint can surface the error state to the dashboard.
	if err := ds.Load(); err != nil {
		log.WithError(err).Warn("Initial dataset load failed; serving error state until a reload succeeds")
	} else if collector != nil {
		collector.RecordDatasetState(len(ds.Records()), ds.Version())
	}

	// Optional scheduled reloads
	if err := ds.StartSchedule(cfg.Dataset.ReloadCron); err != nil {
		log.Fatal("Failed to start dataset reload schedule:", err)
	}
	defer ds.Stop()

	// Initialize router
	router := api.NewRouter(cfg, ds, log, collector, wsHub)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Infof("Starting sales analytics backend on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Info("Server exited")
}
