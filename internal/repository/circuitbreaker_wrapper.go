package repository

import (
	"context"
	"errors"

	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

// WarehouseRepositoryWithCircuitBreaker wraps WarehouseRepository with circuit breaker protection.
// An open circuit surfaces as circuitbreaker.ErrCircuitOpen: allocating against a stale or
// empty catalog is worse than failing the request.
type WarehouseRepositoryWithCircuitBreaker struct {
	repo           WarehouseRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewWarehouseRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewWarehouseRepositoryWithCircuitBreaker(repo WarehouseRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *WarehouseRepositoryWithCircuitBreaker {
	return &WarehouseRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// List returns the active catalog with circuit breaker protection.
func (r *WarehouseRepositoryWithCircuitBreaker) List(ctx context.Context) ([]WarehouseDocument, error) {
	var result []WarehouseDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx)
		return cbErr
	})
	return result, err
}

// Get returns one active warehouse with circuit breaker protection.
func (r *WarehouseRepositoryWithCircuitBreaker) Get(ctx context.Context, name string) (*WarehouseDocument, error) {
	var result *WarehouseDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, name)
		return cbErr
	})
	return result, err
}

// Upsert sets one warehouse's inventory with circuit breaker protection.
func (r *WarehouseRepositoryWithCircuitBreaker) Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*WarehouseDocument, error) {
	var result *WarehouseDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Upsert(ctx, name, inventory, updatedBy)
		return cbErr
	})
	return result, err
}

// ReplaceAll replaces the catalog with circuit breaker protection.
func (r *WarehouseRepositoryWithCircuitBreaker) ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]WarehouseDocument, error) {
	var result []WarehouseDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ReplaceAll(ctx, warehouses, updatedBy)
		return cbErr
	})
	return result, err
}

// Delete deactivates a warehouse with circuit breaker protection.
func (r *WarehouseRepositoryWithCircuitBreaker) Delete(ctx context.Context, name, updatedBy string) (bool, error) {
	var deleted bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		deleted, cbErr = r.repo.Delete(ctx, name, updatedBy)
		return cbErr
	})
	return deleted, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *WarehouseRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
