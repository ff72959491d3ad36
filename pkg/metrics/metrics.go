// Package metrics holds the Prometheus collectors exported on the API's /metrics endpoint.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResolutionExact     = "exact"
	ResolutionCorrected = "corrected"
	ResolutionLiteral   = "literal"
)

var (
	tagOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagbot_tag_operations_total",
			Help: "Total number of tag repository operations",
		},
		[]string{"operation", "result"},
	)
	tagResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagbot_tag_resolutions_total",
			Help: "Outcome of resolving a requested tag name against existing names",
		},
		[]string{"outcome"},
	)
	settingsWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagbot_settings_writes_total",
			Help: "Total number of settings writes",
		},
		[]string{"key", "result"},
	)
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagbot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tagbot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)
)

func RecordTagOperation(operation, result string) {
	tagOperations.WithLabelValues(operation, result).Inc()
}

func RecordResolution(outcome string) {
	tagResolutions.WithLabelValues(outcome).Inc()
}

func RecordSettingsWrite(key string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	settingsWrites.WithLabelValues(key, result).Inc()
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
