// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/logger"
)

// InitializeLogger configures the global JSON logger.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
