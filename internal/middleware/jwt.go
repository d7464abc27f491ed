package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/service"
)

const bearerPrefix = "Bearer "

// JWTAuth returns a middleware that authenticates bearer tokens issued by tokens.
// Requests without an Authorization header fall back to API key authentication
// when keys is configured, so machine clients can skip the token exchange.
func JWTAuth(tokens service.TokenService, keys service.APIKeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if keys != nil && keys.Enabled() && apiKeyFromRequest(c) != "" {
				claims, err := keys.Authenticate(apiKeyFromRequest(c))
				if err != nil {
					abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
					return
				}
				SetClaims(c, claims)
				c.Next()
				return
			}
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}
