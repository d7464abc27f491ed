package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/logger"
)

// ErrorHandler returns a middleware that turns errors attached with c.Error into a
// 500 response when the handler did not write one itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		log := logger.Logger()
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("client_id", GetClientID(c)).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			writeError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
		}
	}
}

// writeError writes a localized error body for status.
func writeError(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.JSON(status, dto.NewErrorResponse(status, message, GetRequestID(c)))
}

// abortWithError writes a localized error body for status and stops the chain.
func abortWithError(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, message, GetRequestID(c)))
}
