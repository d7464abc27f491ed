package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
)

// AuthorizationConfig configures the scopes a route requires.
type AuthorizationConfig struct {
	// RequiredScopes lists the scopes checked against the caller's claims.
	// If empty, any authenticated caller can access.
	RequiredScopes []string
	// RequireAny accepts callers holding at least one scope instead of all of them.
	RequireAny bool
}

// RequireAuthorization returns a middleware that checks the caller's scopes.
// It must run after APIKeyAuth or JWTAuth.
func RequireAuthorization(cfg AuthorizationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}

		if len(cfg.RequiredScopes) == 0 {
			c.Next()
			return
		}

		granted := 0
		for _, scope := range cfg.RequiredScopes {
			if claims.HasScope(scope) {
				granted++
			}
		}

		allowed := granted == len(cfg.RequiredScopes)
		if cfg.RequireAny {
			allowed = granted > 0
		}
		if !allowed {
			abortWithError(c, http.StatusForbidden, i18n.ErrKeyForbidden)
			return
		}

		c.Next()
	}
}

// RequireScope is shorthand for RequireAuthorization with every scope required.
func RequireScope(scopes ...string) gin.HandlerFunc {
	return RequireAuthorization(AuthorizationConfig{RequiredScopes: scopes})
}
