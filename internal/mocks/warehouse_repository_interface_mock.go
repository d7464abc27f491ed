// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockWarehouseRepositoryInterface struct {
	mock.Mock
}

func (m *MockWarehouseRepositoryInterface) List(ctx context.Context) ([]repository.WarehouseDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseRepositoryInterface) Get(ctx context.Context, name string) (*repository.WarehouseDocument, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseRepositoryInterface) Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*repository.WarehouseDocument, error) {
	args := m.Called(ctx, name, inventory, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseRepositoryInterface) ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]repository.WarehouseDocument, error) {
	args := m.Called(ctx, warehouses, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WarehouseDocument), args.Error(1)
}

func (m *MockWarehouseRepositoryInterface) Delete(ctx context.Context, name, updatedBy string) (bool, error) {
	args := m.Called(ctx, name, updatedBy)
	return args.Bool(0), args.Error(1)
}
