// Package allocator splits an order across an ordered list of warehouses using the fewest warehouses.
//
// The warehouse list order is the cost order: index 0 is the cheapest. The search walks the list
// depth-first, greedily filling as much as possible from each warehouse and comparing the plan that
// uses the warehouse against the plan that skips it. Among plans with the same warehouse count the one
// that uses the cheaper warehouse at the first point where the plans diverge is chosen.
//
// Allocate is pure: it never mutates its inputs and keeps no state between calls, so it is safe to
// call concurrently.
package allocator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

// Option configures an Allocator.
type Option func(*Allocator)

// WithMemoization caches sub-results keyed on the residual order and warehouse index for the
// duration of one call. The result is identical with or without it.
func WithMemoization(enabled bool) Option {
	return func(a *Allocator) {
		a.memoize = enabled
	}
}

// Allocator runs the minimum-warehouse search.
type Allocator struct {
	memoize bool
}

// New creates an Allocator with the given options.
func New(opts ...Option) *Allocator {
	a := &Allocator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stats describes the work done by one allocation.
type Stats struct {
	// Nodes is the number of search states visited.
	Nodes int
	// ShortCircuits counts states finished by a single warehouse.
	ShortCircuits int
	// MemoHits counts states answered from the memo table.
	MemoHits int
}

// Allocate returns the cheapest plan using the default allocator.
func Allocate(order model.Items, warehouses []model.Warehouse) model.ShipmentPlan {
	return New().Allocate(order, warehouses)
}

// Allocate returns the minimum-warehouse plan for the order, sorted by warehouse name,
// or model.NoShipment() when the order is empty or cannot be fully shipped.
func (a *Allocator) Allocate(order model.Items, warehouses []model.Warehouse) model.ShipmentPlan {
	plan, _ := a.AllocateWithStats(order, warehouses)
	return plan
}

// AllocateWithStats is Allocate plus search statistics.
func (a *Allocator) AllocateWithStats(order model.Items, warehouses []model.Warehouse) (model.ShipmentPlan, Stats) {
	remaining := order.Positive()
	if len(remaining) == 0 {
		return model.NoShipment(), Stats{}
	}

	s := &search{warehouses: warehouses}
	if a.memoize {
		s.memo = make(map[string]candidate)
	}

	best := s.run(remaining, 0)
	if best.empty() {
		return model.NoShipment(), s.stats
	}
	return model.ShipmentPlan(best.shipments).SortByWarehouse(), s.stats
}

// candidate is a partial plan tagged with its warehouse count.
// The shipments slice is never appended to in place, so candidates may share backing arrays.
type candidate struct {
	shipments []model.Shipment
}

func (c candidate) empty() bool {
	return len(c.shipments) == 0
}

func (c candidate) warehouses() int {
	return len(c.shipments)
}

// prepend returns a new candidate with s placed before the receiver's shipments.
func (c candidate) prepend(s model.Shipment) candidate {
	shipments := make([]model.Shipment, 0, len(c.shipments)+1)
	shipments = append(shipments, s)
	shipments = append(shipments, c.shipments...)
	return candidate{shipments: shipments}
}

// cheaper picks between a plan that uses the current warehouse and one that skips it.
// Fewer warehouses wins; on a tie the plan using the current (cheaper) warehouse wins.
func cheaper(include, exclude candidate) candidate {
	if exclude.warehouses() < include.warehouses() {
		return exclude
	}
	return include
}

type search struct {
	warehouses []model.Warehouse
	memo       map[string]candidate
	stats      Stats
}

func (s *search) run(remaining model.Items, index int) candidate {
	if index == len(s.warehouses) {
		return candidate{}
	}

	var key string
	if s.memo != nil {
		key = memoKey(remaining, index)
		if c, ok := s.memo[key]; ok {
			s.stats.MemoHits++
			return c
		}
	}

	c := s.visit(remaining, index)
	if s.memo != nil {
		s.memo[key] = c
	}
	return c
}

func (s *search) visit(remaining model.Items, index int) candidate {
	s.stats.Nodes++

	warehouse := s.warehouses[index]
	found, next := fill(remaining, warehouse.Inventory)
	include := model.Shipment{Warehouse: warehouse.Name, Items: found}

	if len(next) == 0 {
		s.stats.ShortCircuits++
		return candidate{shipments: []model.Shipment{include}}
	}

	exclude := s.run(remaining, index+1)
	if len(found) == 0 {
		return exclude
	}

	continuation := s.run(next, index+1)
	if continuation.empty() {
		return exclude
	}

	includeFull := continuation.prepend(include)
	if exclude.empty() {
		return includeFull
	}
	return cheaper(includeFull, exclude)
}

// fill takes as much of the remaining order as the inventory holds.
// found holds the positive takes; next holds what is still owed.
func fill(remaining, inventory model.Items) (found, next model.Items) {
	found = make(model.Items, len(remaining))
	next = make(model.Items, len(remaining))
	for item, want := range remaining {
		take := min(want, inventory[item])
		if take > 0 {
			found[item] = take
		}
		if want > take {
			next[item] = want - take
		}
	}
	return found, next
}

// memoKey encodes a search state. Item ids are length-prefixed so that ids containing
// separator bytes cannot make two different states share a key.
func memoKey(remaining model.Items, index int) string {
	keys := make([]string, 0, len(remaining))
	for item := range remaining {
		keys = append(keys, item)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strconv.Itoa(index))
	for _, item := range keys {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(len(item)))
		b.WriteByte(':')
		b.WriteString(item)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(remaining[item]))
	}
	return b.String()
}
