package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/guttosm/inventory-allocator/internal/service"
)

// WarehouseHandler serves the warehouse catalog.
type WarehouseHandler struct {
	warehouses service.WarehouseService
	limits     dto.Limits
	audit      middleware.LogSink
}

// NewWarehouseHandler creates a handler for the catalog endpoints.
func NewWarehouseHandler(warehouses service.WarehouseService, limits dto.Limits, audit middleware.LogSink) *WarehouseHandler {
	return &WarehouseHandler{
		warehouses: warehouses,
		limits:     limits,
		audit:      audit,
	}
}

// List handles GET /api/warehouses.
//
// @Summary      List catalog warehouses
// @Description  Returns the active warehouses, cheapest first.
// @Tags         Warehouses
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.WarehouseListResponse}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - warehouses:read scope required"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	docs, err := h.warehouses.List(c.Request.Context())
	if err != nil {
		status, key := storageError(err)
		builder.Error(status, key, err)
		return
	}

	builder.SuccessOK(toWarehouseList(docs))
}

// Get handles GET /api/warehouses/:name.
//
// @Summary      Get a catalog warehouse
// @Tags         Warehouses
// @Produce      json
// @Param        name path string true "Warehouse name"
// @Success      200 {object} dto.SuccessResponse{data=dto.WarehouseResponse}
// @Failure      404 {object} dto.ErrorResponse "Warehouse not found"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/warehouses/{name} [get]
func (h *WarehouseHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	doc, err := h.warehouses.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		status, key := storageError(err)
		builder.Error(status, key, err)
		return
	}

	builder.SuccessOK(toWarehouseResponse(doc))
}

// Replace handles PUT /api/warehouses.
//
// @Summary      Replace the warehouse catalog
// @Description  Replaces the catalog with the given list; list position becomes the cost rank. An empty list clears the catalog.
// @Tags         Warehouses
// @Accept       json
// @Produce      json
// @Param        request body dto.ReplaceWarehousesRequest true "Cost-ordered warehouses"
// @Success      200 {object} dto.SuccessResponse{data=dto.WarehouseListResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - warehouses:write scope required"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/warehouses [put]
func (h *WarehouseHandler) Replace(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.ReplaceWarehousesRequest](c, h.limits)
	if err != nil {
		builder.BindError(err)
		return
	}

	warehouses := req.ToModel()
	docs, err := h.warehouses.ReplaceAll(c.Request.Context(), warehouses, middleware.GetClientID(c))
	if err != nil {
		status, key := storageError(err)
		middleware.AuditLogError(h.audit, c, middleware.ActionReplaceWarehouses, "Catalog replace failed", err, nil)
		builder.Error(status, key, err)
		return
	}

	names := make([]string, len(warehouses))
	for i, w := range warehouses {
		names[i] = w.Name
	}
	middleware.AuditLog(h.audit, c, middleware.ActionReplaceWarehouses, "Catalog replaced", map[string]interface{}{
		"warehouses": names,
	})
	builder.SuccessOK(toWarehouseList(docs))
}

// Upsert handles PUT /api/warehouses/:name.
//
// @Summary      Create or update a catalog warehouse
// @Description  Sets the warehouse inventory. New warehouses are appended as the most expensive.
// @Tags         Warehouses
// @Accept       json
// @Produce      json
// @Param        name path string true "Warehouse name"
// @Param        request body dto.UpsertWarehouseRequest true "Inventory"
// @Success      200 {object} dto.SuccessResponse{data=dto.WarehouseResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - warehouses:write scope required"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/warehouses/{name} [put]
func (h *WarehouseHandler) Upsert(c *gin.Context) {
	builder := NewResponseBuilder(c)

	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		builder.BindError(&dto.ValidationError{Field: "name", Message: "is required"})
		return
	}

	req, err := BindAndValidate[dto.UpsertWarehouseRequest](c, h.limits)
	if err != nil {
		builder.BindError(err)
		return
	}

	doc, err := h.warehouses.Upsert(c.Request.Context(), name, req.Inventory, middleware.GetClientID(c))
	if err != nil {
		status, key := storageError(err)
		middleware.AuditLogError(h.audit, c, middleware.ActionUpsertWarehouse, "Warehouse update failed", err, map[string]interface{}{
			"warehouse": name,
		})
		builder.Error(status, key, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionUpsertWarehouse, "Warehouse updated", map[string]interface{}{
		"warehouse": name,
		"version":   doc.Version,
	})
	builder.SuccessOK(toWarehouseResponse(doc))
}

// Delete handles DELETE /api/warehouses/:name.
//
// @Summary      Remove a catalog warehouse
// @Tags         Warehouses
// @Produce      json
// @Param        name path string true "Warehouse name"
// @Success      200 {object} dto.SuccessResponse
// @Failure      403 {object} dto.ErrorResponse "Forbidden - warehouses:write scope required"
// @Failure      404 {object} dto.ErrorResponse "Warehouse not found"
// @Failure      503 {object} dto.ErrorResponse "Catalog not configured or storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/warehouses/{name} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	if err := h.warehouses.Delete(c.Request.Context(), name, middleware.GetClientID(c)); err != nil {
		status, key := storageError(err)
		middleware.AuditLogError(h.audit, c, middleware.ActionDeleteWarehouse, "Warehouse delete failed", err, map[string]interface{}{
			"warehouse": name,
		})
		builder.Error(status, key, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionDeleteWarehouse, "Warehouse deleted", map[string]interface{}{
		"warehouse": name,
	})
	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyWarehouseDeleted, gin.H{"name": name})
}

func toWarehouseResponse(doc *repository.WarehouseDocument) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		Name:      doc.Name,
		Rank:      doc.Rank,
		Inventory: doc.Items(),
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
		UpdatedBy: doc.UpdatedBy,
	}
}

func toWarehouseList(docs []repository.WarehouseDocument) dto.WarehouseListResponse {
	list := dto.WarehouseListResponse{
		Warehouses: make([]dto.WarehouseResponse, len(docs)),
		Count:      len(docs),
	}
	for i := range docs {
		list.Warehouses[i] = toWarehouseResponse(&docs[i])
	}
	return list
}
