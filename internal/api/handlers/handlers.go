package handlers

import (
	"time"

	"github.com/retaildash/sales-backend-go/internal/config"
	"github.com/retaildash/sales-backend-go/internal/core/dataset"
	"github.com/retaildash/sales-backend-go/internal/core/export"
	"github.com/retaildash/sales-backend-go/internal/core/metrics"
	"github.com/retaildash/sales-backend-go/internal/websocket"
	"github.com/sirupsen/logrus"
)

// Handlers holds all HTTP handlers and their dependencies
type Handlers struct {
	cfg       *config.Config
	log       *logrus.Logger
	dataset   *dataset.Service
	exporter  *export.Exporter
	collector metrics.Collector
	wsHub     *websocket.Hub
	startedAt time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(cfg *config.Config, ds *dataset.Service, logger *logrus.Logger, collector metrics.Collector, wsHub *websocket.Hub) *Handlers {
	return &Handlers{
		cfg:       cfg,
		log:       logger,
		dataset:   ds,
		exporter:  export.NewExporter(cfg.Export.BaseFilename, logger),
		collector: collector,
		wsHub:     wsHub,
		startedAt: time.Now(),
	}
}
