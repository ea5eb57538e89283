// Package cli provides common initialization utilities shared by
// cmd/fintrack and cmd/chart-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/render"
	"fintrack/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured persistence backend.
// Returns the store or exits the process on failure.
func OpenStore(logger *slog.Logger, cfg *config.Config) storage.Store {
	store, err := storage.Open(storage.Config{
		Type:          storage.BackendType(cfg.StoreBackend),
		JSONStatePath: cfg.JSONStatePath,
		SQLiteDBPath:  cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	logger.Info("Store initialized", "backend", cfg.StoreBackend)
	return store
}

// ConnectRenderer attempts a single connection to the chart renderer.
// On failure the textual fallback is returned and the tracker runs in
// degraded mode; there is no retry.
func ConnectRenderer(logger *slog.Logger, cfg *config.Config) render.Renderer {
	r, err := render.Connect(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Chart renderer unavailable, falling back to text output", "error", err)
		return render.NewTextRenderer(logger)
	}
	logger.Info("Chart renderer connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return r
}
