// Package cli provides common initialization for the finwise binary:
// logging, .env loading, configuration, and the durable state store.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"finwise/internal/config"
	applog "finwise/internal/log"
	"finwise/internal/state"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger() *applog.Logger {
	level := slog.LevelWarn
	if os.Getenv("FINWISE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := applog.New(level, applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenState opens the durable client-local state store.
// Returns the store or exits the process on failure.
func OpenState(logger *applog.Logger, path string) *state.Store {
	st, err := state.Open(path)
	if err != nil {
		logger.Error("Failed to open state store", applog.FieldError, err, "path", path)
		os.Exit(1)
	}
	return st
}
