package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyValidationFailed   = "error.validation_failed"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	// ErrKeyForbidden indicates the caller lacks a required scope.
	ErrKeyForbidden       = "error.forbidden"
	ErrKeyScopeNotGranted = "error.scope_not_granted"
	ErrKeyNotFound        = "error.not_found"
	// ErrKeyWarehouseNotFound indicates no active catalog warehouse has the requested name.
	ErrKeyWarehouseNotFound = "error.warehouse_not_found"
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a request with the same idempotency key is still running.
	ErrKeyConflict = "error.conflict"
	ErrKeyTimeout  = "error.timeout"
	// ErrKeyCatalogUnavailable indicates that no warehouse catalog is configured.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	// ErrKeyStorageUnavailable indicates the database is unreachable or its circuit is open.
	ErrKeyStorageUnavailable = "error.storage_unavailable"
)

// Success message translation keys.
const (
	SuccessKeyAllocationPlanned    = "success.allocation_planned"
	SuccessKeyAllocationImpossible = "success.allocation_unfulfillable"
	SuccessKeyWarehouseDeleted     = "success.warehouse_deleted"
)
