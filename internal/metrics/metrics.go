// Package metrics provides Prometheus metrics collection for the allocation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Allocation outcomes.
const (
	OutcomeFulfilled     = "fulfilled"
	OutcomeUnfulfillable = "unfulfillable"
	OutcomeEmptyOrder    = "empty_order"
	OutcomeCached        = "cached"
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

	// AllocationsTotal counts allocations by source (request or catalog) and outcome.
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocations_total",
			Help: "Total number of order allocations",
		},
		[]string{"source", "outcome"},
	)

	// AllocationDuration tracks the time spent in the warehouse search.
	AllocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_duration_seconds",
			Help:    "Allocation search duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	// AllocationPlanSize tracks the number of warehouses used by fulfilled plans.
	AllocationPlanSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_plan_warehouses",
			Help:    "Number of warehouses used by fulfilled allocations",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 13, 21},
		},
	)

	// AllocationSearchNodes tracks the number of search states visited per allocation.
	AllocationSearchNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_search_nodes",
			Help:    "Search states visited per allocation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState reports breaker state per name: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// LogEntriesTotal counts persisted request and audit log entries by result
	// (written, dropped, failed).
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_total",
			Help: "Total number of log entries handed to the log store",
		},
		[]string{"result"},
	)

	// CatalogWarehouses tracks the number of active catalog warehouses.
	CatalogWarehouses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_warehouses",
			Help: "Number of active warehouses in the catalog",
		},
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

// RecordAllocation records metrics for one allocation search.
func RecordAllocation(source, outcome string, duration time.Duration, warehouses, nodes int) {
	AllocationsTotal.WithLabelValues(source, outcome).Inc()
	AllocationDuration.Observe(duration.Seconds())
	AllocationSearchNodes.Observe(float64(nodes))
	if outcome == OutcomeFulfilled {
		AllocationPlanSize.Observe(float64(warehouses))
	}
}

// RecordCachedAllocation counts an allocation answered from the result cache.
func RecordCachedAllocation(source string) {
	AllocationsTotal.WithLabelValues(source, OutcomeCached).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// SetCatalogWarehouses publishes the active catalog size.
func SetCatalogWarehouses(n int) {
	CatalogWarehouses.Set(float64(n))
}

// RecordLogEntries counts n log entries with the given result.
func RecordLogEntries(result string, n int) {
	LogEntriesTotal.WithLabelValues(result).Add(float64(n))
}
