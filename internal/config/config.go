// Package config provides the application settings, loaded once at startup
// from a yaml file, .env files, and environment variable overrides.
package config

import (
	"fmt"
	"net/url"
)

// Default configuration values.
const (
	defaultAppName    = "My App"
	defaultVersion    = "0.1.0"
	defaultServerPort = 8000
)

// defaultCORSOrigins returns the origins allowed when none are configured.
// Port 5173 is the local frontend dev server.
func defaultCORSOrigins() []string {
	return []string{"http://localhost:5173"}
}

// Config holds the application configuration. It is constructed once by Load
// at process startup and read-only afterwards.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `env:"APP_NAME" yaml:"name"`
	Version string `yaml:"version"`
	Debug   bool   `env:"DEBUG"    yaml:"debug"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int      `env:"PORT"         yaml:"port"`
	CORSOrigins []string `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = defaultAppName
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaultCORSOrigins()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return &ValidationError{Field: "app.name", Message: "is required"}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}
	}
	for _, origin := range c.Server.CORSOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return validateLogFormat(c.Logging.Format)
}

// validateOrigin checks that an origin is an absolute URL with a host.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{
			Field:   "server.cors_origins",
			Message: fmt.Sprintf("%q is not a valid origin URL", origin),
		}
	}
	return nil
}

// validateLogLevel checks if a log level is valid.
func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be one of: debug, info, warn, error",
		}
	}
}

// validateLogFormat checks if a log format is valid.
func validateLogFormat(format string) error {
	switch format {
	case "json", "console":
		return nil
	default:
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be one of: json, console",
		}
	}
}
