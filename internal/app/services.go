// Package app provides service initialization.
package app

import (
	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/rs/zerolog/log"
)

// defaultJWTSecret is the placeholder shipped in config defaults.
const defaultJWTSecret = "your-secret-key-change-in-production"

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Allocator *service.AllocatorServiceImpl
	// APIKeys and Tokens are nil when authentication is disabled.
	APIKeys *service.APIKeyService
	Tokens  service.TokenService
}

// InitializeServices initializes the allocator and, when enabled, the authentication services.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	components := &ServiceComponents{
		Allocator: service.NewAllocatorService(allocatorOptions(cfg, db)...),
	}

	if cfg.Auth.Enabled {
		if len(cfg.Auth.APIKeys) == 0 {
			log.Warn().Msg("Authentication enabled without API_KEYS; protected routes will reject every request")
		}
		components.APIKeys = service.NewAPIKeyService(cfg.Auth.APIKeys, cfg.Auth.Scopes)

		if cfg.Auth.JWTSecretKey != "" {
			if cfg.Auth.JWTSecretKey == defaultJWTSecret {
				log.Warn().Msg("JWT_SECRET_KEY is the default placeholder; set a real secret in production")
			}
			components.Tokens = service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg.Auth))
		}
	}

	return components
}

func allocatorOptions(cfg config.Config, db *DatabaseComponents) []service.Option {
	opts := []service.Option{service.WithMemoization(cfg.Allocator.Memoize)}

	switch {
	case cfg.Cache.Size <= 0:
		log.Info().Msg("Allocation result cache disabled")
	case cfg.Cache.Shards > 0:
		opts = append(opts, service.WithShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	default:
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	if db != nil && db.WarehouseService != nil {
		opts = append(opts, service.WithWarehouseService(db.WarehouseService))
	}
	return opts
}
