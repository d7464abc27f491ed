// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

// Limits bounds the size of an allocation request. Zero means unlimited.
type Limits struct {
	MaxWarehouses int
	MaxItems      int
}

// WarehouseInput is one entry of the ordered warehouse list.
//
// @Description Warehouse name and inventory; list position is the cost rank (first is cheapest)
// @Example {"name": "owd", "inventory": {"apple": 5}}
type WarehouseInput struct {
	// Name identifies the warehouse. Must be non-empty and unique within the list.
	Name string `json:"name" yaml:"name" example:"owd"`
	// Inventory is the available quantity per item.
	Inventory map[string]int `json:"inventory" yaml:"inventory"`
} // @name WarehouseInput

// AllocateRequest represents the JSON request body for the allocation endpoint.
//
// Warehouses are listed cheapest first. Quantities must be non-negative integers;
// zero-quantity order lines are ignored.
//
// @Description Request to split an order across the fewest warehouses
// @Example {"order": {"apple": 10}, "warehouses": [{"name": "owd", "inventory": {"apple": 5}}, {"name": "dm", "inventory": {"apple": 5}}]}
type AllocateRequest struct {
	// Order maps item identifiers to requested quantities.
	Order map[string]int `json:"order" yaml:"order"`
	// Warehouses is the cost-ordered warehouse list.
	Warehouses []WarehouseInput `json:"warehouses" yaml:"warehouses"`
} // @name AllocateRequest

// CatalogAllocateRequest allocates an order against the stored warehouse catalog.
//
// @Description Request to allocate an order against the configured warehouse catalog
// @Example {"order": {"apple": 10}}
type CatalogAllocateRequest struct {
	// Order maps item identifiers to requested quantities.
	Order map[string]int `json:"order"`
} // @name CatalogAllocateRequest

// ReplaceWarehousesRequest replaces the whole warehouse catalog, cheapest first.
//
// @Description Request to replace the warehouse catalog with a new cost-ordered list
type ReplaceWarehousesRequest struct {
	Warehouses []WarehouseInput `json:"warehouses"`
} // @name ReplaceWarehousesRequest

// UpsertWarehouseRequest sets the inventory of a single catalog warehouse.
//
// @Description Request to create or update one warehouse's inventory
// @Example {"inventory": {"apple": 5, "banana": 2}}
type UpsertWarehouseRequest struct {
	Inventory map[string]int `json:"inventory"`
} // @name UpsertWarehouseRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrOrderRequired is returned when the order is missing.
	ErrOrderRequired = &ValidationError{
		Field:   "order",
		Message: "is required",
	}
	// ErrWarehousesRequired is returned when the warehouse list is missing.
	ErrWarehousesRequired = &ValidationError{
		Field:   "warehouses",
		Message: "is required",
	}
	// ErrInventoryRequired is returned when an inventory is missing.
	ErrInventoryRequired = &ValidationError{
		Field:   "inventory",
		Message: "is required",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the order and warehouse list.
// An empty warehouse list is valid and yields an unfulfillable result.
func (r *AllocateRequest) Validate(limits Limits) error {
	if err := validateOrder(r.Order, limits); err != nil {
		return err
	}
	if r.Warehouses == nil {
		return ErrWarehousesRequired
	}
	return validateWarehouses("warehouses", r.Warehouses, limits)
}

// ToModel converts the request into the allocator's input types.
func (r *AllocateRequest) ToModel() (model.Items, []model.Warehouse) {
	return model.Items(r.Order).Clone(), toWarehouses(r.Warehouses)
}

// Validate checks the order.
func (r *CatalogAllocateRequest) Validate(limits Limits) error {
	return validateOrder(r.Order, limits)
}

// Validate checks the replacement list. An empty list clears the catalog.
func (r *ReplaceWarehousesRequest) Validate(limits Limits) error {
	if r.Warehouses == nil {
		return ErrWarehousesRequired
	}
	return validateWarehouses("warehouses", r.Warehouses, limits)
}

// ToModel converts the request into cost-ordered warehouses.
func (r *ReplaceWarehousesRequest) ToModel() []model.Warehouse {
	return toWarehouses(r.Warehouses)
}

// Validate checks the inventory.
func (r *UpsertWarehouseRequest) Validate(limits Limits) error {
	if r.Inventory == nil {
		return ErrInventoryRequired
	}
	return validateQuantities("inventory", r.Inventory, limits.MaxItems)
}

func validateOrder(order map[string]int, limits Limits) error {
	if order == nil {
		return ErrOrderRequired
	}
	return validateQuantities("order", order, limits.MaxItems)
}

func validateWarehouses(field string, warehouses []WarehouseInput, limits Limits) error {
	if limits.MaxWarehouses > 0 && len(warehouses) > limits.MaxWarehouses {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not contain more than %d warehouses", limits.MaxWarehouses),
		}
	}

	seen := make(map[string]int, len(warehouses))
	for i, w := range warehouses {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if w.Name == "" {
			return &ValidationError{Field: prefix + ".name", Message: "is required"}
		}
		if first, ok := seen[w.Name]; ok {
			return &ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("duplicates warehouses[%d] (%q)", first, w.Name),
			}
		}
		seen[w.Name] = i

		if w.Inventory == nil {
			return &ValidationError{Field: prefix + ".inventory", Message: "is required"}
		}
		if err := validateQuantities(prefix+".inventory", w.Inventory, limits.MaxItems); err != nil {
			return err
		}
	}
	return nil
}

func validateQuantities(field string, items map[string]int, maxItems int) error {
	if maxItems > 0 && len(items) > maxItems {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not contain more than %d items", maxItems),
		}
	}
	for _, item := range model.Items(items).Keys() {
		if item == "" {
			return &ValidationError{Field: field, Message: "item identifiers must not be empty"}
		}
		if items[item] < 0 {
			return &ValidationError{Field: field + "." + item, Message: "must be a non-negative integer"}
		}
	}
	return nil
}

func toWarehouses(inputs []WarehouseInput) []model.Warehouse {
	warehouses := make([]model.Warehouse, len(inputs))
	for i, w := range inputs {
		warehouses[i] = model.Warehouse{
			Name:      w.Name,
			Inventory: model.Items(w.Inventory).Clone(),
		}
	}
	return warehouses
}
