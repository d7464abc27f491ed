package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/logger"
)

// Recovery turns a handler panic into a localized 500 and logs the stack.
// Broken client connections are left to gin and produce no response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log := logger.Component("recovery")
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("client_id", GetClientID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Bytes("stack", debug.Stack()).
			Msg("Panic recovered")

		abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
	})
}
