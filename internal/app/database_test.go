//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}, config.CatalogConfig{}))
}

func TestBreakerConfig(t *testing.T) {
	defaults := circuitbreaker.DefaultConfig()

	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want circuitbreaker.Config
	}{
		{
			name: "zero values fall back to defaults",
			cfg:  config.DatabaseConfig{},
			want: circuitbreaker.Config{
				FailureThreshold: defaults.FailureThreshold,
				SuccessThreshold: defaults.SuccessThreshold,
				Timeout:          defaults.Timeout,
				Name:             "mongodb-warehouses",
			},
		},
		{
			name: "configured values win",
			cfg: config.DatabaseConfig{
				CircuitBreakerFailureThreshold: 3,
				CircuitBreakerSuccessThreshold: 1,
				CircuitBreakerTimeout:          5 * time.Second,
			},
			want: circuitbreaker.Config{
				FailureThreshold: 3,
				SuccessThreshold: 1,
				Timeout:          5 * time.Second,
				Name:             "mongodb-warehouses",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, breakerConfig(tt.cfg, "mongodb-warehouses"))
		})
	}
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NoError(t, components.Close(context.Background()))
	assert.NoError(t, (&DatabaseComponents{}).Close(context.Background()))
}
