package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuthorization(t *testing.T) {
	writer := &dto.Claims{ClientID: "fulfilment", Scopes: []string{dto.ScopeAllocationsWrite, dto.ScopeWarehousesRead}}

	tests := []struct {
		name           string
		claims         *dto.Claims
		cfg            AuthorizationConfig
		expectedStatus int
	}{
		{
			name:           "anonymous caller",
			cfg:            AuthorizationConfig{RequiredScopes: []string{dto.ScopeAllocationsWrite}},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no scopes required",
			claims:         &dto.Claims{ClientID: "bare"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "scope granted",
			claims:         writer,
			cfg:            AuthorizationConfig{RequiredScopes: []string{dto.ScopeAllocationsWrite}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "scope missing",
			claims:         writer,
			cfg:            AuthorizationConfig{RequiredScopes: []string{dto.ScopeWarehousesWrite}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "all scopes required, one missing",
			claims: writer,
			cfg: AuthorizationConfig{
				RequiredScopes: []string{dto.ScopeWarehousesRead, dto.ScopeAuditRead},
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "any scope accepted",
			claims: writer,
			cfg: AuthorizationConfig{
				RequiredScopes: []string{dto.ScopeWarehousesRead, dto.ScopeAuditRead},
				RequireAny:     true,
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.claims != nil {
				router.Use(withClaims(tt.claims))
			}
			router.Use(RequireAuthorization(tt.cfg))
			router.GET("/test", okHandler)

			w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireScope_Localized(t *testing.T) {
	router := gin.New()
	router.Use(withClaims(&dto.Claims{ClientID: "reporting"}))
	router.GET("/test", RequireScope(dto.ScopeAuditRead), okHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	w := serve(router, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"forbidden"`)
	assert.Contains(t, w.Body.String(), "Proibido")
}
