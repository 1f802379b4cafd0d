package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records service metrics for Prometheus scraping.
type Collector interface {
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
	RecordWebSocketConnection(event string)
	RecordDatasetState(records int, version int64)
	RecordDatasetReload(success bool)
	RecordExport(format string)
}

// PrometheusCollector implements Collector using promauto metrics.
type PrometheusCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	websocketConnections prometheus.Gauge

	datasetRecords prometheus.Gauge
	datasetVersion prometheus.Gauge
	datasetReloads *prometheus.CounterVec

	exportsTotal *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector with the given metric
// name prefix.
func NewPrometheusCollector(prefix string) *PrometheusCollector {
	if prefix == "" {
		prefix = "salesdash"
	}

	return &PrometheusCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		websocketConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_websocket_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		datasetRecords: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_records",
				Help: "Number of order records in the current snapshot",
			},
		),
		datasetVersion: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_dataset_version",
				Help: "Version counter of the current dataset snapshot",
			},
		),
		datasetReloads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_dataset_reloads_total",
				Help: "Total number of dataset reload attempts",
			},
			[]string{"result"},
		),
		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_exports_total",
				Help: "Total number of export downloads",
			},
			[]string{"format"},
		),
	}
}

func (c *PrometheusCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordWebSocketConnection(event string) {
	switch event {
	case "connect":
		c.websocketConnections.Inc()
	case "disconnect":
		c.websocketConnections.Dec()
	}
}

func (c *PrometheusCollector) RecordDatasetState(records int, version int64) {
	c.datasetRecords.Set(float64(records))
	c.datasetVersion.Set(float64(version))
}

func (c *PrometheusCollector) RecordDatasetReload(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.datasetReloads.WithLabelValues(result).Inc()
}

func (c *PrometheusCollector) RecordExport(format string) {
	c.exportsTotal.WithLabelValues(format).Inc()
}
