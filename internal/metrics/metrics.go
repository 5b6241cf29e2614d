// Package metrics provides Prometheus metrics collection for the meal planner service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meal_planner"

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// SolvesTotal counts solves by outcome status (optimal, best_effort,
	// infeasible, timeout, error).
	SolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total number of meal plan solves by status",
		},
		[]string{"status"},
	)

	// SolveDuration tracks wall time of a solve.
	SolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Meal plan solve duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// SearchNodes tracks branch-and-bound nodes visited per solve.
	SearchNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_nodes",
			Help:      "Branch-and-bound nodes visited per solve",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 8),
		},
	)

	// CacheOperationsTotal tracks solution cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of solution cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current solution cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size",
			Help:      "Current solution cache size",
		},
	)

	// PlanRunsRecorded counts plan run history writes by result (written, dropped, error).
	PlanRunsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_runs_recorded_total",
			Help:      "Plan run history records by result",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// RecordSolve records the outcome of one solve.
func RecordSolve(duration time.Duration, status string, nodes int64) {
	SolveDuration.Observe(duration.Seconds())
	SolvesTotal.WithLabelValues(status).Inc()
	if nodes > 0 {
		SearchNodes.Observe(float64(nodes))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheSize sets the current number of cached solutions.
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}

// RecordPlanRun records the result of persisting a plan run.
func RecordPlanRun(result string) {
	PlanRunsRecorded.WithLabelValues(result).Inc()
}
