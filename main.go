package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/webapp-backend/internal/api"
	"github.com/jonesrussell/webapp-backend/internal/config"
	"github.com/jonesrussell/webapp-backend/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Assemble and run the HTTP server
	srv := api.NewServer(cfg, log)

	log.Info("Backend starting",
		logger.String("app", cfg.App.Name),
		logger.Int("port", cfg.Server.Port),
		logger.Bool("debug", cfg.App.Debug),
		logger.Strings("cors_origins", cfg.Server.CORSOrigins),
	)

	if err := srv.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Backend exited cleanly")
	return 0
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.App.Name)), nil
}
