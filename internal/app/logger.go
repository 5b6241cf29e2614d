// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/logger"
)

// InitializeLogger configures the global logger from cfg.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
