package repository

import (
	"context"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

// WarehouseRepositoryInterface defines the interface for warehouse catalog operations.
type WarehouseRepositoryInterface interface {
	List(ctx context.Context) ([]WarehouseDocument, error)
	Get(ctx context.Context, name string) (*WarehouseDocument, error)
	Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*WarehouseDocument, error)
	ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]WarehouseDocument, error)
	Delete(ctx context.Context, name, updatedBy string) (bool, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ WarehouseRepositoryInterface = (*WarehouseRepository)(nil)
	_ WarehouseRepositoryInterface = (*WarehouseRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface      = (*LogsRepository)(nil)
	_ LogsRepositoryInterface      = (*LogsRepositoryWithCircuitBreaker)(nil)
)
