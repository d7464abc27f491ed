package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/service"
)

// storageError maps catalog and log storage errors to a status and message key.
func storageError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrCatalogNotConfigured), errors.Is(err, service.ErrRepositoryNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyStorageUnavailable
	case errors.Is(err, service.ErrWarehouseNotFound):
		return http.StatusNotFound, i18n.ErrKeyWarehouseNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}
