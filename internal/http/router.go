package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/metrics"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	Limits            dto.Limits

	// LogSink persists request and audit entries; nil keeps them on the console only.
	LogSink middleware.LogSink
	// APIKeys authenticates machine clients. Required when EnableAuth is set.
	APIKeys service.APIKeyAuthenticator
	// TokenService enables bearer tokens and the token endpoint.
	TokenService service.TokenService
	// WarehouseService enables the catalog endpoints.
	WarehouseService service.WarehouseService
	// LoggingService enables the audit log query endpoint.
	LoggingService service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 10 * time.Second,
		EnableAuth:     false,
	}
}

// NewRouter creates and configures the Gin router for the allocation service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	protected := api
	if cfg.EnableAuth {
		if cfg.TokenService != nil {
			NewAuthRoutes(NewAuthHandler(cfg.TokenService, cfg.LogSink)).RegisterRoutes(api, &cfg)
		}
		protected = api.Group("")
		configureAuthMiddleware(protected, &cfg)
	}

	// Idempotency runs after authentication so replays are scoped to the client.
	if cfg.EnableIdempotency {
		protected.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}

	for _, group := range routeGroups(handler, &cfg) {
		group.RegisterRoutes(protected, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(middleware.CORS(allowedOrigins))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// configureAuthMiddleware authenticates the protected group with bearer tokens, falling
// back to API keys, and limits each client separately.
func configureAuthMiddleware(protected *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.TokenService != nil {
		protected.Use(middleware.JWTAuth(cfg.TokenService, cfg.APIKeys))
	} else {
		protected.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	if cfg.RateLimit > 0 {
		clientLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(clientLimiter.ClientRateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// routeGroups returns the API route groups enabled by cfg.
func routeGroups(handler *Handler, cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if handler != nil {
		groups = append(groups, NewAllocationRoutes(handler))
	}
	if cfg.WarehouseService != nil {
		groups = append(groups, NewWarehouseRoutes(NewWarehouseHandler(cfg.WarehouseService, cfg.Limits, cfg.LogSink)))
	}
	if cfg.LoggingService != nil {
		groups = append(groups, NewAuditLogRoutes(NewAuditLogHandler(cfg.LoggingService)))
	}
	return groups
}
