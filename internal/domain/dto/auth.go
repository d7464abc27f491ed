// Package dto defines Data Transfer Objects for authentication.
package dto

import "slices"

// Scopes granted to API clients.
const (
	ScopeAllocationsWrite = "allocations:write"
	ScopeWarehousesRead   = "warehouses:read"
	ScopeWarehousesWrite  = "warehouses:write"
	ScopeAuditRead        = "audit:read"
)

// TokenRequest represents the optional JSON body for the token endpoint.
// When Scopes is empty the token carries every scope granted to the client.
//
// @Description Request to exchange an API key for a short-lived access token
// @Example {"scopes": ["allocations:write"]}
type TokenRequest struct {
	// Scopes narrows the token to a subset of the client's scopes.
	Scopes []string `json:"scopes,omitempty" example:"allocations:write"`
} // @name TokenRequest

// TokenResponse represents the JSON response body for the token endpoint.
//
// @Description Issued access token
// @Example {"access_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "token_type": "Bearer", "expires_in": 900, "scopes": ["allocations:write"]}
type TokenResponse struct {
	// AccessToken is the signed JWT.
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// TokenType is always "Bearer".
	TokenType string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
	// Scopes granted to the token.
	Scopes []string `json:"scopes"`
} // @name TokenResponse

// Claims represents the authenticated caller, either from an API key or a JWT.
type Claims struct {
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes"`
}

// HasScope reports whether the caller was granted scope.
func (c *Claims) HasScope(scope string) bool {
	return c != nil && slices.Contains(c.Scopes, scope)
}

// Validate checks that no requested scope is empty.
func (r *TokenRequest) Validate() error {
	for _, scope := range r.Scopes {
		if scope == "" {
			return &ValidationError{
				Field:   "scopes",
				Message: "scope must not be empty",
			}
		}
	}
	return nil
}
