package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
)

// ClaimsKey is the gin context key holding the authenticated caller.
const ClaimsKey = "client_claims"

// SetClaims stores the authenticated caller on the context.
func SetClaims(c *gin.Context, claims *dto.Claims) {
	c.Set(ClaimsKey, claims)
}

// GetClaims returns the authenticated caller, or nil when the request is anonymous.
func GetClaims(c *gin.Context) *dto.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*dto.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetClientID returns the authenticated client id, or "" for anonymous requests.
func GetClientID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.ClientID
	}
	return ""
}
