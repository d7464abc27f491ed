// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockCache is a mock implementation of cache.Cache with typed expectations.
type MockCache struct {
	mock.Mock
}

type MockCache_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCache) EXPECT() *MockCache_Expecter {
	return &MockCache_Expecter{mock: &_m.Mock}
}

// NewMockCache creates a MockCache whose expectations are asserted on test cleanup.
func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockCache) Get(key string) (model.AllocationResult, bool) {
	ret := _m.Called(key)
	result, _ := ret.Get(0).(model.AllocationResult)
	return result, ret.Bool(1)
}

type MockCache_Get_Call struct {
	*mock.Call
}

func (_e *MockCache_Expecter) Get(key interface{}) *MockCache_Get_Call {
	return &MockCache_Get_Call{Call: _e.mock.On("Get", key)}
}

func (_c *MockCache_Get_Call) Return(result model.AllocationResult, ok bool) *MockCache_Get_Call {
	_c.Call.Return(result, ok)
	return _c
}

func (_c *MockCache_Get_Call) Once() *MockCache_Get_Call {
	_c.Call.Once()
	return _c
}

func (_m *MockCache) Set(key string, value model.AllocationResult) {
	_m.Called(key, value)
}

type MockCache_Set_Call struct {
	*mock.Call
}

func (_e *MockCache_Expecter) Set(key interface{}, value interface{}) *MockCache_Set_Call {
	return &MockCache_Set_Call{Call: _e.mock.On("Set", key, value)}
}

func (_c *MockCache_Set_Call) Return() *MockCache_Set_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockCache_Set_Call) Once() *MockCache_Set_Call {
	_c.Call.Once()
	return _c
}

func (_m *MockCache) Invalidate(key string) {
	_m.Called(key)
}

func (_m *MockCache) Clear() {
	_m.Called()
}

type MockCache_Clear_Call struct {
	*mock.Call
}

func (_e *MockCache_Expecter) Clear() *MockCache_Clear_Call {
	return &MockCache_Clear_Call{Call: _e.mock.On("Clear")}
}

func (_c *MockCache_Clear_Call) Return() *MockCache_Clear_Call {
	_c.Call.Return()
	return _c
}

func (_m *MockCache) Stop() {
	_m.Called()
}
