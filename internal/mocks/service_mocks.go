// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.AllocatorService = (*MockAllocatorService)(nil)
	_ service.WarehouseService = (*MockWarehouseService)(nil)
	_ service.LoggingService   = (*MockLoggingService)(nil)
	_ service.TokenService     = (*MockTokenService)(nil)
)

type MockAllocatorService struct {
	mock.Mock
}

func (m *MockAllocatorService) Allocate(order model.Items, warehouses []model.Warehouse) model.AllocationResult {
	args := m.Called(order, warehouses)
	return args.Get(0).(model.AllocationResult)
}

func (m *MockAllocatorService) AllocateFromCatalog(ctx context.Context, order model.Items) (model.AllocationResult, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(model.AllocationResult), args.Error(1)
}

func (m *MockAllocatorService) InvalidateCache() {
	m.Called()
}

type MockWarehouseService struct {
	mock.Mock
}

func (m *MockWarehouseService) List(ctx context.Context) ([]repository.WarehouseDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseService) Get(ctx context.Context, name string) (*repository.WarehouseDocument, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseService) Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*repository.WarehouseDocument, error) {
	args := m.Called(ctx, name, inventory, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseService) ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]repository.WarehouseDocument, error) {
	args := m.Called(ctx, warehouses, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseService) Delete(ctx context.Context, name, updatedBy string) error {
	args := m.Called(ctx, name, updatedBy)
	return args.Error(0)
}

func (m *MockWarehouseService) Catalog(ctx context.Context) ([]model.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Warehouse), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(client *dto.Claims, requested []string) (*dto.TokenResponse, error) {
	args := m.Called(client, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (*dto.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}
