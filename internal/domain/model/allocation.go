// Package model defines the core domain entities for the allocation service.
package model

import (
	"encoding/json"
	"errors"
	"sort"
)

// Items maps an item identifier to a quantity.
// It is used both for requested quantities (an order) and available stock (an inventory).
//
// @Description Item identifier to quantity mapping
// @Example {"apple": 5, "banana": 2}
type Items map[string]int

// Positive returns a copy of the items without zero or negative entries.
func (it Items) Positive() Items {
	out := make(Items, len(it))
	for item, qty := range it {
		if qty > 0 {
			out[item] = qty
		}
	}
	return out
}

// Clone returns a shallow copy of the items.
func (it Items) Clone() Items {
	out := make(Items, len(it))
	for item, qty := range it {
		out[item] = qty
	}
	return out
}

// Total returns the sum of all quantities.
func (it Items) Total() int {
	var total int
	for _, qty := range it {
		total += qty
	}
	return total
}

// Keys returns the item identifiers in lexicographic order.
func (it Items) Keys() []string {
	keys := make([]string, 0, len(it))
	for item := range it {
		keys = append(keys, item)
	}
	sort.Strings(keys)
	return keys
}

// Warehouse is a named stock location. Its position in a warehouse list is its cost rank:
// index 0 is the cheapest.
//
// @Description Warehouse name and available inventory
// @Example {"name": "owd", "inventory": {"apple": 5}}
type Warehouse struct {
	// Name identifies the warehouse and must be unique within a list
	Name string `json:"name" yaml:"name" example:"owd"`
	// Inventory is the available quantity per item
	Inventory Items `json:"inventory" yaml:"inventory"`
}

// Shipment is the contribution of a single warehouse to a plan.
// It serializes as a single-key object: {"<warehouse>": {"<item>": quantity}}.
type Shipment struct {
	Warehouse string
	Items     Items
}

// ErrMalformedShipment is returned when a shipment object does not hold exactly one warehouse.
var ErrMalformedShipment = errors.New("shipment must contain exactly one warehouse")

// MarshalJSON encodes the shipment as {"<warehouse>": items}.
func (s Shipment) MarshalJSON() ([]byte, error) {
	items := s.Items
	if items == nil {
		items = Items{}
	}
	return json.Marshal(map[string]Items{s.Warehouse: items})
}

// UnmarshalJSON decodes a single-key shipment object.
func (s *Shipment) UnmarshalJSON(data []byte) error {
	var raw map[string]Items
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return ErrMalformedShipment
	}
	for name, items := range raw {
		s.Warehouse = name
		s.Items = items
	}
	return nil
}

// ShipmentPlan is an ordered list of shipments, each from a distinct warehouse,
// that together cover an order exactly.
//
// @Description Shipments sorted by warehouse name; empty when the order cannot be shipped
// @Example [{"dm": {"apple": 5}}, {"owd": {"apple": 5}}]
type ShipmentPlan []Shipment

// NoShipment is the empty plan: the order cannot be fully shipped (or there was nothing to ship).
func NoShipment() ShipmentPlan {
	return ShipmentPlan{}
}

// IsEmpty reports whether the plan ships nothing.
func (p ShipmentPlan) IsEmpty() bool {
	return len(p) == 0
}

// WarehouseCount returns the number of warehouses used by the plan.
func (p ShipmentPlan) WarehouseCount() int {
	return len(p)
}

// Warehouses returns the warehouse names in plan order.
func (p ShipmentPlan) Warehouses() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Warehouse
	}
	return names
}

// Totals sums the shipped quantity of every item across the plan.
func (p ShipmentPlan) Totals() Items {
	totals := make(Items)
	for _, s := range p {
		for item, qty := range s.Items {
			totals[item] += qty
		}
	}
	return totals
}

// SortByWarehouse returns a copy of the plan ordered by warehouse name.
func (p ShipmentPlan) SortByWarehouse() ShipmentPlan {
	sorted := make(ShipmentPlan, len(p))
	copy(sorted, p)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Warehouse < sorted[j].Warehouse
	})
	return sorted
}

// MarshalJSON encodes a nil plan as an empty array.
func (p ShipmentPlan) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Shipment(p))
}

// AllocationResult is the outcome of allocating an order.
// It implements JSON serialization for direct use in HTTP responses.
//
// @Description Allocation result containing the order, the chosen shipments and whether the order is fulfilled
// @Example {"order": {"apple": 10}, "shipments": [{"dm": {"apple": 5}}, {"owd": {"apple": 5}}], "fulfilled": true, "warehouse_count": 2}
type AllocationResult struct {
	// Order is the requested order after zero-quantity entries were dropped
	Order Items `json:"order"`
	// Shipments is the minimum-warehouse plan, sorted by warehouse name
	Shipments ShipmentPlan `json:"shipments"`
	// Fulfilled is true when Shipments covers the whole order
	Fulfilled bool `json:"fulfilled" example:"true"`
	// EmptyOrder is true when the order had no positive quantities
	EmptyOrder bool `json:"empty_order" example:"false"`
	// WarehouseCount is the number of warehouses used
	WarehouseCount int `json:"warehouse_count" example:"2"`
}

// NewAllocationResult builds a result for the given order and plan.
func NewAllocationResult(order Items, plan ShipmentPlan) AllocationResult {
	positive := order.Positive()
	if plan == nil {
		plan = NoShipment()
	}
	return AllocationResult{
		Order:          positive,
		Shipments:      plan,
		Fulfilled:      !plan.IsEmpty(),
		EmptyOrder:     len(positive) == 0,
		WarehouseCount: plan.WarehouseCount(),
	}
}
