// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/logger"
)

// InitializeLogger initializes the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
