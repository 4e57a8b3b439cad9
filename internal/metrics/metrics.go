// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oscar_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oscar_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oscar_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Response cache
	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oscar_response_cache_total",
			Help: "Response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oscar_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	// Database pool, sampled by the pool watcher
	DBOpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oscar_db_open_connections",
			Help: "Open connections in the PostgreSQL pool",
		},
	)

	DBIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oscar_db_idle_connections",
			Help: "Idle connections in the PostgreSQL pool",
		},
	)

	// Activity events
	ActivityEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oscar_activity_events_published_total",
			Help: "Activity events handed to RabbitMQ by outcome",
		},
		[]string{"type", "outcome"},
	)
)
