package service

import (
	"crypto/subtle"
	"errors"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/inventory-allocator/internal/domain/dto"
)

// ErrInvalidAPIKey is returned when an API key does not match any configured client.
var ErrInvalidAPIKey = errors.New("invalid api key")

// APIKeySeparator separates the client id from the secret in a presented API key.
const APIKeySeparator = ":"

// APIKeyAuthenticator resolves API keys of the form "<client>:<secret>" to client claims.
type APIKeyAuthenticator interface {
	// Authenticate returns the claims of the client owning key.
	Authenticate(key string) (*dto.Claims, error)
	// Enabled reports whether any client is configured.
	Enabled() bool
}

// APIKeyService checks presented secrets against configured ones. A configured secret
// that parses as a bcrypt hash is compared with bcrypt; anything else in constant time.
type APIKeyService struct {
	secrets map[string]string
	scopes  []string
}

// NewAPIKeyService creates an authenticator granting scopes to every configured client.
func NewAPIKeyService(secrets map[string]string, scopes []string) *APIKeyService {
	return &APIKeyService{
		secrets: secrets,
		scopes:  slices.Clone(scopes),
	}
}

func (s *APIKeyService) Enabled() bool {
	return s != nil && len(s.secrets) > 0
}

func (s *APIKeyService) Authenticate(key string) (*dto.Claims, error) {
	client, secret, ok := strings.Cut(key, APIKeySeparator)
	if !ok || client == "" || secret == "" {
		return nil, ErrInvalidAPIKey
	}

	stored, found := s.secrets[client]
	if !found || !secretMatches(stored, secret) {
		return nil, ErrInvalidAPIKey
	}

	return &dto.Claims{
		ClientID: client,
		Scopes:   slices.Clone(s.scopes),
	}, nil
}

func secretMatches(stored, presented string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
