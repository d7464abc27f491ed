package dto

import (
	"net/http"
	"time"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is not configured or not reachable.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data (AllocationResult for the allocate endpoints)
	Data interface{} `json:"data" swaggertype:"object"`
	// Message is a localized summary of the outcome (optional)
	Message string `json:"message,omitempty" example:"Order allocated"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Request validation failed"`
	// Details names the offending field and the reason for validation failures
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewErrorResponse builds the error envelope for status.
func NewErrorResponse(status int, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     ErrCodeFromStatus(status),
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}

// ValidationDetails renders err as the details of an error response.
func ValidationDetails(err *ValidationError) map[string]string {
	return map[string]string{"field": err.Field, "reason": err.Message}
}

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusForbidden:          ErrCodeForbidden,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusConflict:           ErrCodeConflict,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusServiceUnavailable: ErrCodeUnavailable,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted statuses
// are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// WarehouseResponse is a catalog warehouse in API responses.
//
// @Description Catalog warehouse with its cost rank
// @Example {"name": "owd", "rank": 0, "inventory": {"apple": 5}, "version": 3}
type WarehouseResponse struct {
	Name      string         `json:"name" example:"owd"`
	Rank      int            `json:"rank" example:"0"`
	Inventory map[string]int `json:"inventory"`
	Version   int            `json:"version" example:"3"`
	UpdatedAt time.Time      `json:"updated_at" example:"2025-01-28T10:00:00Z"`
	UpdatedBy string         `json:"updated_by,omitempty" example:"ops"`
} // @name WarehouseResponse

// WarehouseListResponse is the cost-ordered catalog.
// @Description Warehouse catalog, cheapest first
type WarehouseListResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
	Count      int                 `json:"count" example:"2"`
} // @name WarehouseListResponse

// AuditLogsResponse is a page of audit log entries.
// @Description Audit log query result
type AuditLogsResponse struct {
	Logs  interface{} `json:"logs" swaggertype:"array,object"`
	Total int64       `json:"total" example:"42"`
} // @name AuditLogsResponse
