package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guttosm/inventory-allocator/internal/allocator"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

var (
	errUnfulfilled = errors.New("order cannot be fully shipped from the given warehouses")
	errEmptyOrder  = errors.New("order has no positive quantities")
)

type cmdPlan struct {
	InputConfig
	Format  string `long:"format" short:"o" choice:"table" choice:"json" default:"table" description:"Output format"`
	Memoize bool   `long:"memoize" description:"Memoize search states within the allocation"`
	Strict  bool   `long:"strict" description:"Exit with status 1 when the order cannot be fully shipped"`

	io ioConfig
}

func (cmd *cmdPlan) Execute([]string) error {
	req, err := cmd.load(cmd.io.stdin)
	if err != nil {
		return err
	}
	order, warehouses := req.ToModel()

	start := time.Now()
	plan, stats := allocator.New(allocator.WithMemoization(cmd.Memoize)).AllocateWithStats(order, warehouses)
	result := model.NewAllocationResult(order, plan)

	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("nodes", stats.Nodes).
		Int("short_circuits", stats.ShortCircuits).
		Int("memo_hits", stats.MemoHits).
		Bool("fulfilled", result.Fulfilled).
		Msg("Allocation planned")

	switch cmd.Format {
	case "json":
		err = outputJSON(cmd.io.stdout, result)
	default:
		err = outputTable(cmd.io.stdout, result)
	}
	if err != nil {
		return err
	}

	if cmd.Strict && !result.Fulfilled {
		if result.EmptyOrder {
			return &exitError{code: exitUnfulfilled, err: errEmptyOrder}
		}
		return &exitError{code: exitUnfulfilled, err: errUnfulfilled}
	}
	return nil
}

func outputJSON(w io.Writer, result model.AllocationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputTable prints one row per shipped item, warehouses in plan order.
func outputTable(w io.Writer, result model.AllocationResult) error {
	switch {
	case result.EmptyOrder:
		_, err := fmt.Fprintln(w, errEmptyOrder.Error())
		return err
	case !result.Fulfilled:
		_, err := fmt.Fprintln(w, errUnfulfilled.Error())
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Warehouse", "Item", "Quantity")
	for _, shipment := range result.Shipments {
		for _, item := range shipment.Items.Keys() {
			if err := table.Append([]string{shipment.Warehouse, item, strconv.Itoa(shipment.Items[item])}); err != nil {
				return err
			}
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d warehouses, %d units\n", result.WarehouseCount, result.Shipments.Totals().Total())
	return err
}
