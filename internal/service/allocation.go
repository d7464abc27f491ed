package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
	"time"

	"github.com/guttosm/inventory-allocator/internal/allocator"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/metrics"
	"github.com/guttosm/inventory-allocator/internal/service/cache"
)

// ErrCatalogNotConfigured is returned by AllocateFromCatalog when no warehouse catalog is available.
var ErrCatalogNotConfigured = errors.New("warehouse catalog not configured")

// Allocation sources reported in metrics.
const (
	SourceRequest = "request"
	SourceCatalog = "catalog"
)

// AllocatorService splits orders across warehouses.
type AllocatorService interface {
	// Allocate plans the order against warehouses given in cost order.
	Allocate(order model.Items, warehouses []model.Warehouse) model.AllocationResult
	// AllocateFromCatalog plans the order against the stored warehouse catalog.
	AllocateFromCatalog(ctx context.Context, order model.Items) (model.AllocationResult, error)
	// InvalidateCache drops every cached result.
	InvalidateCache()
}

// Option configures an AllocatorServiceImpl.
type Option func(*AllocatorServiceImpl)

// AllocatorServiceImpl implements AllocatorService on top of the allocator package.
// Results are cached by a fingerprint of the order and the ordered warehouse list, so a
// catalog change produces new keys without explicit invalidation.
type AllocatorServiceImpl struct {
	allocOpts  []allocator.Option
	allocator  *allocator.Allocator
	cache      cache.Cache
	warehouses WarehouseService
}

// NewAllocatorService creates a new allocator service with the given options.
func NewAllocatorService(opts ...Option) *AllocatorServiceImpl {
	s := &AllocatorServiceImpl{}
	for _, opt := range opts {
		opt(s)
	}
	s.allocator = allocator.New(s.allocOpts...)
	return s
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *AllocatorServiceImpl) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables result caching spread over shards for write-heavy traffic.
func WithShardedCache(capacity int, ttl time.Duration, shards int) Option {
	return func(s *AllocatorServiceImpl) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *AllocatorServiceImpl) {
		s.cache = c
	}
}

// WithMemoization enables the allocator's per-call memo table.
func WithMemoization(enabled bool) Option {
	return func(s *AllocatorServiceImpl) {
		s.allocOpts = append(s.allocOpts, allocator.WithMemoization(enabled))
	}
}

// WithWarehouseService sets the catalog used by AllocateFromCatalog.
func WithWarehouseService(ws WarehouseService) Option {
	return func(s *AllocatorServiceImpl) {
		s.warehouses = ws
	}
}

// Allocate plans the order against the given warehouses.
func (s *AllocatorServiceImpl) Allocate(order model.Items, warehouses []model.Warehouse) model.AllocationResult {
	return s.allocate(SourceRequest, order, warehouses)
}

// AllocateFromCatalog plans the order against the active catalog, cheapest warehouse first.
func (s *AllocatorServiceImpl) AllocateFromCatalog(ctx context.Context, order model.Items) (model.AllocationResult, error) {
	if s.warehouses == nil {
		return model.AllocationResult{}, ErrCatalogNotConfigured
	}

	catalog, err := s.warehouses.Catalog(ctx)
	if err != nil {
		if errors.Is(err, ErrRepositoryNotConfigured) {
			return model.AllocationResult{}, ErrCatalogNotConfigured
		}
		return model.AllocationResult{}, err
	}
	return s.allocate(SourceCatalog, order, catalog), nil
}

func (s *AllocatorServiceImpl) allocate(source string, order model.Items, warehouses []model.Warehouse) model.AllocationResult {
	positive := order.Positive()
	if len(positive) == 0 {
		metrics.RecordAllocation(source, metrics.OutcomeEmptyOrder, 0, 0, 0)
		return model.NewAllocationResult(positive, model.NoShipment())
	}

	var key string
	if s.cache != nil {
		key = Fingerprint(positive, warehouses)
		if result, ok := s.cache.Get(key); ok {
			metrics.RecordCachedAllocation(source)
			return result
		}
	}

	start := time.Now()
	plan, stats := s.allocator.AllocateWithStats(positive, warehouses)
	result := model.NewAllocationResult(positive, plan)

	outcome := metrics.OutcomeFulfilled
	if !result.Fulfilled {
		outcome = metrics.OutcomeUnfulfillable
	}
	metrics.RecordAllocation(source, outcome, time.Since(start), result.WarehouseCount, stats.Nodes)

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result
}

// InvalidateCache clears the result cache.
func (s *AllocatorServiceImpl) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the cache's background resources.
func (s *AllocatorServiceImpl) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// CacheMetrics reports cache statistics when the cache exposes them.
func (s *AllocatorServiceImpl) CacheMetrics() (cache.Metrics, bool) {
	if c, ok := s.cache.(cache.CacheWithMetrics); ok {
		return c.Metrics(), true
	}
	return cache.Metrics{}, false
}

// Fingerprint returns a hex SHA-256 digest identifying an allocation input. Zero-quantity
// entries do not change it; warehouse order does. Every string is length-prefixed so no
// two distinct inputs share an encoding.
func Fingerprint(order model.Items, warehouses []model.Warehouse) string {
	h := sha256.New()
	writeItems(h, order.Positive())
	writeInt(h, len(warehouses))
	for _, w := range warehouses {
		writeString(h, w.Name)
		writeItems(h, w.Inventory.Positive())
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeItems(h hash.Hash, items model.Items) {
	keys := items.Keys()
	writeInt(h, len(keys))
	for _, k := range keys {
		writeString(h, k)
		writeInt(h, items[k])
	}
}

func writeString(h hash.Hash, s string) {
	writeInt(h, len(s))
	_, _ = h.Write([]byte(s))
}

func writeInt(h hash.Hash, n int) {
	var buf [binary.MaxVarintLen64]byte
	_, _ = h.Write(buf[:binary.PutVarint(buf[:], int64(n))])
}
