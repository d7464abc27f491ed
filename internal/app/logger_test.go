//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/inventory-allocator/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zerolog.Level
	}{
		{name: "empty level defaults to info", cfg: config.LogConfig{}, wantLevel: zerolog.InfoLevel},
		{name: "debug", cfg: config.LogConfig{Level: "debug"}, wantLevel: zerolog.DebugLevel},
		{name: "pretty warn", cfg: config.LogConfig{Level: "warn", Pretty: true}, wantLevel: zerolog.WarnLevel},
		{name: "error", cfg: config.LogConfig{Level: "error"}, wantLevel: zerolog.ErrorLevel},
		{name: "unknown level falls back to info", cfg: config.LogConfig{Level: "verbose"}, wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
