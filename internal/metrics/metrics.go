// Package metrics provides Prometheus metrics collection for the sale pack service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PackExpansionsTotal counts pack line expansions by reconcile mode and outcome.
	PackExpansionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pack_expansions_total",
			Help: "Total number of pack line expansions",
		},
		[]string{"mode", "status"},
	)

	// PackExpansionDuration tracks how long a single pack line expansion takes.
	PackExpansionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pack_expansion_duration_seconds",
			Help:    "Pack line expansion duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// PackComponentLinesTotal counts component lines touched by expansions.
	PackComponentLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pack_component_lines_total",
			Help: "Total number of pack component lines created, updated or discarded",
		},
		[]string{"action"},
	)

	// PackLineModifyRejectedTotal counts edits refused on non-modifiable component lines.
	PackLineModifyRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pack_line_modify_rejected_total",
			Help: "Total number of rejected edits on non-modifiable pack component lines",
		},
	)

	// RateLimitRejectedTotal counts requests refused by the rate limiter.
	RateLimitRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejected_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// AuditEntriesDroppedTotal counts audit entries dropped because the writer buffer was full.
	AuditEntriesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_entries_dropped_total",
			Help: "Total number of audit entries dropped by the audit writer",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState exposes circuit breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPackExpansion records metrics for one expansion of a pack line.
func RecordPackExpansion(duration time.Duration, mode, status string, created, updated, discarded int) {
	PackExpansionDuration.Observe(duration.Seconds())
	PackExpansionsTotal.WithLabelValues(mode, status).Inc()
	if created > 0 {
		PackComponentLinesTotal.WithLabelValues("created").Add(float64(created))
	}
	if updated > 0 {
		PackComponentLinesTotal.WithLabelValues("updated").Add(float64(updated))
	}
	if discarded > 0 {
		PackComponentLinesTotal.WithLabelValues("discarded").Add(float64(discarded))
	}
}

// RecordPackLineModifyRejected records a refused edit on a locked component line.
func RecordPackLineModifyRejected() {
	PackLineModifyRejectedTotal.Inc()
}

// RecordRateLimitRejection records a request refused with 429.
func RecordRateLimitRejection() {
	RateLimitRejectedTotal.Inc()
}

// RecordAuditEntryDropped records an audit entry lost to a full buffer.
func RecordAuditEntryDropped() {
	AuditEntriesDroppedTotal.Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cacheName, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cacheName, operation, result).Inc()
}

// UpdateCacheSize updates the size gauge of the named cache.
func UpdateCacheSize(cacheName string, size int) {
	CacheSize.WithLabelValues(cacheName).Set(float64(size))
}

// RecordCircuitBreakerState publishes the numeric state of a circuit breaker.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
