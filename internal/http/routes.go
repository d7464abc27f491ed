package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/middleware"
)

// RouteGroup defines a group of API routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// guarded prepends the scope check to handler when authentication is enabled.
func guarded(cfg *RouterConfig, scope string, handler gin.HandlerFunc) []gin.HandlerFunc {
	if !cfg.EnableAuth {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{middleware.RequireScope(scope), handler}
}

// AllocationRoutes registers the allocation endpoints.
type AllocationRoutes struct {
	handler *Handler
}

// NewAllocationRoutes creates allocation routes for handler.
func NewAllocationRoutes(handler *Handler) *AllocationRoutes {
	return &AllocationRoutes{handler: handler}
}

func (r *AllocationRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/allocate", guarded(cfg, dto.ScopeAllocationsWrite, r.handler.Allocate)...)
	rg.POST("/allocate/catalog", guarded(cfg, dto.ScopeAllocationsWrite, r.handler.AllocateFromCatalog)...)
}

// WarehouseRoutes registers the catalog endpoints.
type WarehouseRoutes struct {
	handler *WarehouseHandler
}

// NewWarehouseRoutes creates catalog routes for handler.
func NewWarehouseRoutes(handler *WarehouseHandler) *WarehouseRoutes {
	return &WarehouseRoutes{handler: handler}
}

func (r *WarehouseRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	warehouses := rg.Group("/warehouses")
	{
		warehouses.GET("", guarded(cfg, dto.ScopeWarehousesRead, r.handler.List)...)
		warehouses.PUT("", guarded(cfg, dto.ScopeWarehousesWrite, r.handler.Replace)...)
		warehouses.GET("/:name", guarded(cfg, dto.ScopeWarehousesRead, r.handler.Get)...)
		warehouses.PUT("/:name", guarded(cfg, dto.ScopeWarehousesWrite, r.handler.Upsert)...)
		warehouses.DELETE("/:name", guarded(cfg, dto.ScopeWarehousesWrite, r.handler.Delete)...)
	}
}

// AuditLogRoutes registers the audit log query endpoint.
type AuditLogRoutes struct {
	handler *AuditLogHandler
}

// NewAuditLogRoutes creates audit log routes for handler.
func NewAuditLogRoutes(handler *AuditLogHandler) *AuditLogRoutes {
	return &AuditLogRoutes{handler: handler}
}

func (r *AuditLogRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/audit-logs", guarded(cfg, dto.ScopeAuditRead, r.handler.Query)...)
}

// AuthRoutes registers the token endpoint. It authenticates with API keys only, so it
// is registered outside the bearer-protected group.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates token routes for handler.
func NewAuthRoutes(handler *AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

func (r *AuthRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/auth/token", middleware.APIKeyAuth(cfg.APIKeys), r.handler.IssueToken)
}
