// Package app provides router configuration.
package app

import (
	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/http"
	"github.com/guttosm/inventory-allocator/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	// AsyncLogger persists request and audit entries; nil without a database.
	AsyncLogger *middleware.AsyncLogger
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	limits := dto.Limits{
		MaxWarehouses: cfg.Allocator.MaxWarehouses,
		MaxItems:      cfg.Allocator.MaxItems,
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		Limits:            limits,
	}

	// Leave interface fields unset rather than holding typed nils.
	if services.APIKeys != nil {
		routerCfg.APIKeys = services.APIKeys
	}
	if services.Tokens != nil {
		routerCfg.TokenService = services.Tokens
	}

	healthHandler := http.NewHealthHandler()
	handlerOpts := []http.HandlerOption{http.WithLimits(limits)}

	var asyncLogger *middleware.AsyncLogger
	if dbComponents != nil {
		routerCfg.WarehouseService = dbComponents.WarehouseService
		routerCfg.LoggingService = dbComponents.LoggingService

		asyncLogger = middleware.NewAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
		routerCfg.LogSink = asyncLogger
		handlerOpts = append(handlerOpts, http.WithAuditSink(asyncLogger))

		// Register dependencies for readiness
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_warehouses", dbComponents.WarehousesCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services.Allocator, handlerOpts...),
		HealthHandler: healthHandler,
		Config:        routerCfg,
		AsyncLogger:   asyncLogger,
	}
}
