package service

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
)

var (
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrScopeNotGranted is returned when a token is requested for a scope the client lacks.
	ErrScopeNotGranted = errors.New("scope not granted to client")
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenService issues and validates stateless access tokens.
type TokenService interface {
	// Issue signs a token for an authenticated client. requested narrows the client's
	// scopes; empty means all of them.
	Issue(client *dto.Claims, requested []string) (*dto.TokenResponse, error)
	// Validate parses a signed token and returns its claims.
	Validate(tokenString string) (*dto.Claims, error)
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:      authConfig.JWTSecretKey,
		Issuer:         authConfig.JWTIssuer,
		AccessTokenTTL: authConfig.AccessTokenTTL,
	}
}

// TokenServiceImpl implements TokenService with HS256-signed JWTs.
type TokenServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(cfg TokenConfig) TokenService {
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       cfg.AccessTokenTTL,
		now:       time.Now,
	}
}

func (s *TokenServiceImpl) Issue(client *dto.Claims, requested []string) (*dto.TokenResponse, error) {
	if client == nil || client.ClientID == "" {
		return nil, errors.New("client id is empty, cannot create token")
	}

	scopes := slices.Clone(client.Scopes)
	if len(requested) > 0 {
		for _, scope := range requested {
			if !client.HasScope(scope) {
				return nil, fmt.Errorf("%w: %s", ErrScopeNotGranted, scope)
			}
		}
		scopes = slices.Compact(slices.Sorted(slices.Values(requested)))
	}

	now := s.now()
	claims := &ClaimsWithJWT{
		Claims: dto.Claims{
			ClientID: client.ClientID,
			Scopes:   scopes,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   client.ClientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		Scopes:      scopes,
	}, nil
}

func (s *TokenServiceImpl) Validate(tokenString string) (*dto.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ClaimsWithJWT)
	if !ok || !token.Valid || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}
