//go:build !integration

package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService() service.TokenService {
	return service.NewTokenService(service.TokenConfig{
		SecretKey:      "test-secret",
		Issuer:         "inventory-allocator",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func fulfilmentClient() *dto.Claims {
	return &dto.Claims{ClientID: "fulfilment", Scopes: []string{"allocations:write", "warehouses:read"}}
}

func TestTokenService_Issue(t *testing.T) {
	tests := []struct {
		name       string
		client     *dto.Claims
		requested  []string
		wantScopes []string
		wantErr    error
	}{
		{
			name:       "all client scopes",
			client:     fulfilmentClient(),
			wantScopes: []string{"allocations:write", "warehouses:read"},
		},
		{
			name:       "narrowed and deduplicated",
			client:     fulfilmentClient(),
			requested:  []string{"warehouses:read", "warehouses:read"},
			wantScopes: []string{"warehouses:read"},
		},
		{
			name:      "scope not granted",
			client:    fulfilmentClient(),
			requested: []string{"audit:read"},
			wantErr:   service.ErrScopeNotGranted,
		},
	}

	svc := testTokenService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Issue(tt.client, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, int64(900), resp.ExpiresIn)
			assert.Equal(t, tt.wantScopes, resp.Scopes)
			assert.Len(t, strings.Split(resp.AccessToken, "."), 3)

			claims, err := svc.Validate(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "fulfilment", claims.ClientID)
			assert.Equal(t, tt.wantScopes, claims.Scopes)
		})
	}

	t.Run("missing client", func(t *testing.T) {
		_, err := svc.Issue(&dto.Claims{}, nil)
		assert.Error(t, err)
		_, err = svc.Issue(nil, nil)
		assert.Error(t, err)
	})
}

func TestTokenService_Validate(t *testing.T) {
	svc := testTokenService()
	issued, err := svc.Issue(fulfilmentClient(), nil)
	require.NoError(t, err)

	otherSecret := service.NewTokenService(service.TokenConfig{SecretKey: "other", Issuer: "inventory-allocator", AccessTokenTTL: time.Minute})
	forged, err := otherSecret.Issue(fulfilmentClient(), nil)
	require.NoError(t, err)

	otherIssuer := service.NewTokenService(service.TokenConfig{SecretKey: "test-secret", Issuer: "someone-else", AccessTokenTTL: time.Minute})
	foreign, err := otherIssuer.Issue(fulfilmentClient(), nil)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"client_id": "fulfilment", "iss": "inventory-allocator"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: issued.AccessToken},
		{name: "garbage", token: "not-a-token", wantErr: true},
		{name: "wrong secret", token: forged.AccessToken, wantErr: true},
		{name: "wrong issuer", token: foreign.AccessToken, wantErr: true},
		{name: "unsigned", token: unsigned, wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidToken)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "fulfilment", claims.ClientID)
			}
		})
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc := testTokenService()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	service.SetTokenClock(svc, func() time.Time { return now })

	issued, err := svc.Issue(fulfilmentClient(), nil)
	require.NoError(t, err)

	now = now.Add(14 * time.Minute)
	_, err = svc.Validate(issued.AccessToken)
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = svc.Validate(issued.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestNewTokenConfigFromAuthConfig(t *testing.T) {
	cfg := service.NewTokenConfigFromAuthConfig(config.AuthConfig{
		JWTSecretKey:   "k",
		JWTIssuer:      "iss",
		AccessTokenTTL: time.Hour,
	})
	assert.Equal(t, service.TokenConfig{SecretKey: "k", Issuer: "iss", AccessTokenTTL: time.Hour}, cfg)
}
