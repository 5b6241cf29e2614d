// Package cache declares the solution cache contract used by the planner.
package cache

import "github.com/guttosm/meal-planner-service/internal/domain/model"

// Cache stores solutions keyed by an input fingerprint.
type Cache interface {
	Get(key string) (model.Solution, bool)
	Set(key string, value model.Solution)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
