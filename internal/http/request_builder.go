package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/middleware"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// LimitedValidator is implemented by request bodies validated against size limits.
type LimitedValidator interface {
	Validate(limits dto.Limits) error
}

// BindAndValidate decodes the JSON body into T and, when T implements LimitedValidator,
// validates it. Decoding errors are returned as is; validation errors are *dto.ValidationError.
func BindAndValidate[T any](c *gin.Context, limits dto.Limits) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if validator, ok := any(&req).(LimitedValidator); ok {
		if err := validator.Validate(limits); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the standard success and error envelopes.
// Uses sync.Pool for DTO reuse to reduce allocations.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.success(statusCode, "", data)
}

// SuccessWithMessage sends a successful response with a localized summary.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, messageKey string, data interface{}) {
	b.success(statusCode, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), data)
}

func (b *ResponseBuilder) success(statusCode int, message string, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Gin serializes synchronously, so the response can go back to the pool afterwards.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error sends an error response with the given status code and message key.
// A non-nil err is attached to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), nil, err)
}

// ErrorWithMessage sends an error response with a custom message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, nil, err)
}

// BindError reports a request that could not be decoded or validated. Validation
// failures carry the offending field and reason in details.
func (b *ResponseBuilder) BindError(err error) {
	var validationErr *dto.ValidationError
	if !errors.As(err, &validationErr) {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	message := i18n.GetTranslator().Translate(i18n.ErrKeyValidationFailed, i18n.GetLocale(b.c))
	b.abort(http.StatusBadRequest, message, dto.ValidationDetails(validationErr), nil)
}

func (b *ResponseBuilder) abort(statusCode int, message string, details map[string]string, err error) {
	resp := getErrorResponse()
	*resp = dto.NewErrorResponse(statusCode, message, middleware.GetRequestID(b.c))
	resp.Details = details

	if err != nil && statusCode >= http.StatusInternalServerError {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}
