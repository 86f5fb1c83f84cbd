// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/epq-service/config"
	"github.com/guttosm/epq-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
