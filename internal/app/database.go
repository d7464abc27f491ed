// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/rs/zerolog/log"
)

const seedTimeout = 10 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                       *repository.MongoDB
	WarehouseService         service.WarehouseService
	LoggingService           service.LoggingService
	WarehousesCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker       *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the catalog and audit log services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, catalog config.CatalogConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	components := newDatabaseComponents(db, cfg, catalog)

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	if err := seedCatalog(ctx, components.WarehouseService, catalog.SeedFile); err != nil {
		log.Warn().Err(err).Str("file", catalog.SeedFile).Msg("Failed to seed warehouse catalog")
	}

	return components
}

// newDatabaseComponents wraps both repositories in their own circuit breaker.
func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig, catalog config.CatalogConfig) *DatabaseComponents {
	warehousesCB := circuitbreaker.New(breakerConfig(cfg, "mongodb-warehouses"))
	logsCB := circuitbreaker.New(breakerConfig(cfg, "mongodb-logs"))

	warehouseRepo := repository.NewWarehouseRepositoryWithCircuitBreaker(repository.NewWarehouseRepository(db), warehousesCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                       db,
		WarehouseService:         service.NewWarehouseService(warehouseRepo, service.WithCatalogCacheTTL(catalog.CacheTTL)),
		LoggingService:           service.NewLoggingService(logsRepo),
		WarehousesCircuitBreaker: warehousesCB,
		LogsCircuitBreaker:       logsCB,
	}
}

func breakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	defaults := circuitbreaker.DefaultConfig()
	bc := circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	}
	if bc.FailureThreshold <= 0 {
		bc.FailureThreshold = defaults.FailureThreshold
	}
	if bc.SuccessThreshold <= 0 {
		bc.SuccessThreshold = defaults.SuccessThreshold
	}
	if bc.Timeout <= 0 {
		bc.Timeout = defaults.Timeout
	}
	return bc
}

// HealthCheck pings MongoDB.
func (d *DatabaseComponents) HealthCheck(ctx context.Context) error {
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
