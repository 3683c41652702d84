// Package logging builds the zap logger shared by the server and the batch CLI.
package logging

import (
	"go.uber.org/zap"

	"partsync/internal/config"
)

// New creates a logger from cfg. Format "console" gives human-readable output,
// anything else JSON. An unknown level falls back to info.
func New(cfg *config.LogConfig, service string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", service)), nil
}

// Must is New for main packages; it falls back to a production logger on error.
func Must(cfg *config.LogConfig, service string) *zap.Logger {
	logger, err := New(cfg, service)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Warn("invalid log config, using defaults", zap.Error(err))
		return fallback.With(zap.String("service", service))
	}
	return logger
}
