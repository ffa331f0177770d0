// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	RecipeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_lookups_total",
			Help: "Recipe detail cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_image_uploads_total",
			Help: "Recipe image uploads by outcome",
		},
		[]string{"outcome"}, // "stored", "rejected", "failed"
	)
)

// RecordAPIRequest records a finished request
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
