// Package cache defines the allocation result cache contract.
package cache

import "github.com/guttosm/inventory-allocator/internal/domain/model"

// Cache stores allocation results keyed by request fingerprint.
type Cache interface {
	Get(key string) (model.AllocationResult, bool)
	Set(key string, value model.AllocationResult)
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

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
