package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики election-api.
var (
	// HTTPRequestsTotal — количество обработанных запросов.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "election",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration — длительность обработки запросов.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "election",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EventsPublishFailed — события, которые не удалось опубликовать.
	EventsPublishFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "election",
			Subsystem: "api",
			Name:      "events_publish_failed_total",
			Help:      "Entity change events that could not be published.",
		},
		[]string{"entity"},
	)
)

// Метрики election-auditor.
var (
	// AuditorEventsTotal — обработанные события по результату:
	// stored, duplicate, invalid, failed.
	AuditorEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "election",
			Subsystem: "auditor",
			Name:      "events_total",
			Help:      "Entity change events processed by the auditor.",
		},
		[]string{"entity", "result"},
	)
)
