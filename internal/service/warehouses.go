package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/metrics"
	"github.com/guttosm/inventory-allocator/internal/repository"
	lru "github.com/hashicorp/golang-lru"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrWarehouseNotFound is returned when no active warehouse has the requested name.
	ErrWarehouseNotFound = errors.New("warehouse not found")
)

const catalogKey = "catalog"

// WarehouseService manages the stored warehouse catalog.
type WarehouseService interface {
	// List returns the active warehouses, cheapest first.
	List(ctx context.Context) ([]repository.WarehouseDocument, error)
	// Get returns one active warehouse or ErrWarehouseNotFound.
	Get(ctx context.Context, name string) (*repository.WarehouseDocument, error)
	// Upsert sets a warehouse's inventory, appending new warehouses to the cost order.
	Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*repository.WarehouseDocument, error)
	// ReplaceAll replaces the catalog with warehouses in the given cost order.
	ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]repository.WarehouseDocument, error)
	// Delete removes a warehouse from the catalog or returns ErrWarehouseNotFound.
	Delete(ctx context.Context, name, updatedBy string) error
	// Catalog returns the cost-ordered warehouses for allocation. Callers must not modify it.
	Catalog(ctx context.Context) ([]model.Warehouse, error)
}

// WarehouseServiceOption configures a WarehouseServiceImpl.
type WarehouseServiceOption func(*WarehouseServiceImpl)

// WithCatalogCacheTTL caches catalog snapshots for ttl. Zero disables caching.
func WithCatalogCacheTTL(ttl time.Duration) WarehouseServiceOption {
	return func(s *WarehouseServiceImpl) {
		s.ttl = ttl
	}
}

// WarehouseServiceImpl implements WarehouseService.
type WarehouseServiceImpl struct {
	repo  repository.WarehouseRepositoryInterface
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

type cachedCatalog struct {
	warehouses []model.Warehouse
	at         time.Time
}

// NewWarehouseService creates a new warehouse service. A nil repository yields a service
// whose operations return ErrRepositoryNotConfigured.
func NewWarehouseService(repo repository.WarehouseRepositoryInterface, opts ...WarehouseServiceOption) WarehouseService {
	s := &WarehouseServiceImpl{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl > 0 {
		// Only errors on size <= 0.
		s.cache, _ = lru.New(1)
	}
	return s
}

func (s *WarehouseServiceImpl) List(ctx context.Context) ([]repository.WarehouseDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	metrics.SetCatalogWarehouses(len(docs))
	return docs, nil
}

func (s *WarehouseServiceImpl) Get(ctx context.Context, name string) (*repository.WarehouseDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	doc, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get warehouse %q: %w", name, err)
	}
	if doc == nil {
		return nil, ErrWarehouseNotFound
	}
	return doc, nil
}

func (s *WarehouseServiceImpl) Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*repository.WarehouseDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	defer s.invalidate()

	doc, err := s.repo.Upsert(ctx, name, inventory, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("upsert warehouse %q: %w", name, err)
	}
	return doc, nil
}

func (s *WarehouseServiceImpl) ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]repository.WarehouseDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	defer s.invalidate()

	docs, err := s.repo.ReplaceAll(ctx, warehouses, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("replace warehouses: %w", err)
	}
	metrics.SetCatalogWarehouses(len(docs))
	return docs, nil
}

func (s *WarehouseServiceImpl) Delete(ctx context.Context, name, updatedBy string) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	defer s.invalidate()

	deleted, err := s.repo.Delete(ctx, name, updatedBy)
	if err != nil {
		return fmt.Errorf("delete warehouse %q: %w", name, err)
	}
	if !deleted {
		return ErrWarehouseNotFound
	}
	return nil
}

func (s *WarehouseServiceImpl) Catalog(ctx context.Context) ([]model.Warehouse, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	if s.cache != nil {
		if v, ok := s.cache.Get(catalogKey); ok {
			if cc := v.(cachedCatalog); s.now().Sub(cc.at) < s.ttl {
				metrics.RecordCacheOperation("catalog", "hit")
				return cc.warehouses, nil
			}
			s.cache.Remove(catalogKey)
		}
		metrics.RecordCacheOperation("catalog", "miss")
	}

	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	warehouses := make([]model.Warehouse, len(docs))
	for i := range docs {
		warehouses[i] = docs[i].ToModel()
	}

	if s.cache != nil {
		s.cache.Add(catalogKey, cachedCatalog{warehouses: warehouses, at: s.now()})
	}
	return warehouses, nil
}

func (s *WarehouseServiceImpl) invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
