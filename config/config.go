// Package config loads the allocation service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Log       LogConfig
	Server    ServerConfig
	Cache     CacheConfig
	Allocator AllocatorConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig holds allocation result cache configuration. A zero Size disables caching.
type CacheConfig struct {
	Size   int
	TTL    time.Duration
	Shards int
}

// AllocatorConfig holds allocator and request limit configuration.
type AllocatorConfig struct {
	Memoize bool
	// MaxWarehouses and MaxItems bound request sizes; zero means unlimited.
	MaxWarehouses int
	MaxItems      int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	// APIKeys maps a client id to its secret, stored either in plain text or as a bcrypt hash.
	APIKeys        map[string]string
	Scopes         []string
	JWTSecretKey   string
	JWTIssuer      string
	AccessTokenTTL time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CatalogConfig holds warehouse catalog configuration.
type CatalogConfig struct {
	// SeedFile is a YAML or JSON warehouse list loaded into an empty catalog at startup.
	SeedFile string
	CacheTTL time.Duration
}

// DefaultScopes are granted to API key clients when AUTH_SCOPES is unset.
var DefaultScopes = []string{"allocations:write", "warehouses:read", "warehouses:write", "audit:read"}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:   getEnvInt("CACHE_SIZE", 1000),
			TTL:    getEnvDuration("CACHE_TTL", 5*time.Minute),
			Shards: getEnvInt("CACHE_SHARDS", 0),
		},
		Allocator: AllocatorConfig{
			Memoize:       getEnvBool("ALLOCATOR_MEMOIZE", true),
			MaxWarehouses: getEnvInt("ALLOCATOR_MAX_WAREHOUSES", 64),
			MaxItems:      getEnvInt("ALLOCATOR_MAX_ITEMS", 1000),
		},
		Auth: AuthConfig{
			Enabled:        getEnvBool("AUTH_ENABLED", false),
			APIKeys:        parseAPIKeys(os.Getenv("API_KEYS")),
			Scopes:         parseList(os.Getenv("AUTH_SCOPES"), DefaultScopes),
			JWTSecretKey:   getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTIssuer:      getEnv("JWT_ISSUER", "inventory-allocator"),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "inventory_allocator"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			SeedFile: getEnv("WAREHOUSE_SEED_FILE", ""),
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseAPIKeys reads comma-separated client=secret pairs. Entries without a client id
// or secret are skipped.
func parseAPIKeys(s string) map[string]string {
	if s == "" {
		return nil
	}
	pairs := strings.Split(s, ",")
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		client, secret, ok := strings.Cut(strings.TrimSpace(pair), "=")
		client = strings.TrimSpace(client)
		if !ok || client == "" || secret == "" {
			continue
		}
		result[client] = secret
	}
	return result
}

func parseList(s string, defaults []string) []string {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), defaults...)
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Local development origins are always allowed.
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	return append(defaults, parseList(s, nil)...)
}
