package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/service"
)

// Handler provides HTTP handlers for the allocation routes.
type Handler struct {
	allocator service.AllocatorService
	limits    dto.Limits
	audit     middleware.LogSink
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLimits bounds the size of allocation requests.
func WithLimits(limits dto.Limits) HandlerOption {
	return func(h *Handler) {
		h.limits = limits
	}
}

// WithAuditSink records allocation requests as audit entries.
func WithAuditSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.audit = sink
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(allocator service.AllocatorService, opts ...HandlerOption) *Handler {
	h := &Handler{allocator: allocator}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Allocate handles POST /api/allocate requests.
//
// @Summary      Allocate an order across warehouses
// @Description  Splits an order across the fewest warehouses able to cover it. Warehouses are listed cheapest first; among plans with the same number of warehouses the one using cheaper warehouses wins. An order that cannot be fully covered yields an empty shipment list with fulfilled=false. Supports idempotency via Idempotency-Key header.
// @Tags         Allocation
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.AllocateRequest true "Order and cost-ordered warehouses"
// @Success      200 {object} dto.SuccessResponse{data=model.AllocationResult} "Allocation result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - allocations:write scope required"
// @Failure      409 {object} dto.ErrorResponse "Conflict - idempotent request in progress"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/allocate [post]
func (h *Handler) Allocate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.AllocateRequest](c, h.limits)
	if err != nil {
		builder.BindError(err)
		return
	}

	order, warehouses := req.ToModel()
	result := h.allocator.Allocate(order, warehouses)

	middleware.AuditLog(h.audit, c, middleware.ActionAllocate, "Order allocated", allocationFields(result, len(warehouses)))
	builder.SuccessWithMessage(http.StatusOK, allocationMessageKey(result), result)
}

// AllocateFromCatalog handles POST /api/allocate/catalog requests.
//
// @Summary      Allocate an order against the warehouse catalog
// @Description  Splits an order across the fewest active catalog warehouses, using the catalog rank as cost order.
// @Tags         Allocation
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CatalogAllocateRequest true "Order"
// @Success      200 {object} dto.SuccessResponse{data=model.AllocationResult} "Allocation result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - allocations:write scope required"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Failure      504 {object} dto.ErrorResponse "Catalog read timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/allocate/catalog [post]
func (h *Handler) AllocateFromCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.CatalogAllocateRequest](c, h.limits)
	if err != nil {
		builder.BindError(err)
		return
	}

	result, err := h.allocator.AllocateFromCatalog(c.Request.Context(), model.Items(req.Order))
	if err != nil {
		status, key := storageError(err)
		middleware.AuditLogError(h.audit, c, middleware.ActionAllocateCatalog, "Catalog allocation failed", err, nil)
		builder.Error(status, key, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionAllocateCatalog, "Order allocated from catalog", allocationFields(result, -1))
	builder.SuccessWithMessage(http.StatusOK, allocationMessageKey(result), result)
}

func allocationMessageKey(result model.AllocationResult) string {
	if result.Fulfilled {
		return i18n.SuccessKeyAllocationPlanned
	}
	return i18n.SuccessKeyAllocationImpossible
}

// allocationFields summarizes a result for the audit log. candidates < 0 omits the
// warehouse list size.
func allocationFields(result model.AllocationResult, candidates int) map[string]interface{} {
	fields := map[string]interface{}{
		"order_lines":     len(result.Order),
		"order_units":     result.Order.Total(),
		"fulfilled":       result.Fulfilled,
		"empty_order":     result.EmptyOrder,
		"warehouse_count": result.WarehouseCount,
		"warehouses":      result.Shipments.Warehouses(),
	}
	if candidates >= 0 {
		fields["candidates"] = candidates
	}
	return fields
}
