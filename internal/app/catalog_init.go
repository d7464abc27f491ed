// Package app provides warehouse catalog seeding.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/logger"
	"github.com/guttosm/inventory-allocator/internal/service"
	"gopkg.in/yaml.v3"
)

// seedUpdatedBy is recorded as the author of seeded warehouses.
const seedUpdatedBy = "system"

// errEmptySeed is returned for a seed file without warehouses.
var errEmptySeed = errors.New("seed file lists no warehouses")

// seedCatalog loads path into the catalog when the catalog is empty. An empty path is a no-op.
func seedCatalog(ctx context.Context, warehouses service.WarehouseService, path string) error {
	if path == "" {
		return nil
	}

	log := logger.Component("catalog")

	existing, err := warehouses.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug().Int("warehouses", len(existing)).Msg("Warehouse catalog already populated, skipping seed")
		return nil
	}

	seed, err := loadWarehouseSeed(path)
	if err != nil {
		return err
	}

	docs, err := warehouses.ReplaceAll(ctx, seed, seedUpdatedBy)
	if err != nil {
		return err
	}
	log.Info().Int("warehouses", len(docs)).Str("file", path).Msg("Seeded warehouse catalog")
	return nil
}

// loadWarehouseSeed reads a cost-ordered warehouse list. The document is either a bare
// list or a mapping with a "warehouses" key; JSON parses as YAML.
func loadWarehouseSeed(path string) ([]model.Warehouse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errEmptySeed
	}
	if err := dto.CheckYAMLQuantities(&doc); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}

	var req dto.ReplaceWarehousesRequest
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		err = root.Decode(&req.Warehouses)
	} else {
		var wrapped struct {
			Warehouses []dto.WarehouseInput `yaml:"warehouses"`
		}
		err = root.Decode(&wrapped)
		req.Warehouses = wrapped.Warehouses
	}
	if err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(req.Warehouses) == 0 {
		return nil, errEmptySeed
	}

	if err := req.Validate(dto.Limits{}); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return req.ToModel(), nil
}
