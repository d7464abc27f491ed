package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/service"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth returns a middleware that authenticates "<client>:<secret>" API keys.
// It checks the X-API-Key header first, then falls back to the api_key query parameter.
// When keys is nil or has no clients configured, requests pass through anonymously.
func APIKeyAuth(keys service.APIKeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keys == nil || !keys.Enabled() {
			c.Next()
			return
		}

		key := apiKeyFromRequest(c)
		if key == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}

		claims, err := keys.Authenticate(key)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

func apiKeyFromRequest(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}
