package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   TokenRequest
		wantError bool
	}{
		{
			name:      "no scopes",
			request:   TokenRequest{},
			wantError: false,
		},
		{
			name:      "valid scopes",
			request:   TokenRequest{Scopes: []string{"allocations:write", "warehouses:read"}},
			wantError: false,
		},
		{
			name:      "empty scope",
			request:   TokenRequest{Scopes: []string{"allocations:write", ""}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantError {
				assert.Error(t, err)
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "scopes", validationErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClaims_HasScope(t *testing.T) {
	claims := &Claims{ClientID: "billing", Scopes: []string{"allocations:write"}}

	assert.True(t, claims.HasScope("allocations:write"))
	assert.False(t, claims.HasScope("warehouses:write"))

	var nilClaims *Claims
	assert.False(t, nilClaims.HasScope("allocations:write"))
}
