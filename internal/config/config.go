package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"studysize/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Sweep  SweepConfig
	Export ExportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// SweepConfig bounds parameter sweeps
type SweepConfig struct {
	Workers           int
	MaxRows           int
	DefaultConfidence float64
}

// ExportConfig holds file export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ReadTimeout:     getEnvDurationOrDefault("READ_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
		Sweep: SweepConfig{
			Workers:           getEnvIntOrDefault("SWEEP_WORKERS", runtime.NumCPU()),
			MaxRows:           getEnvIntOrDefault("SWEEP_MAX_ROWS", 100000),
			DefaultConfidence: getEnvFloatOrDefault("DEFAULT_CONFIDENCE", 0.95),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Sweep.Workers < 1 {
		return errors.ConfigInvalid("SWEEP_WORKERS must be at least 1")
	}
	if config.Sweep.MaxRows < 1 {
		return errors.ConfigInvalid("SWEEP_MAX_ROWS must be at least 1")
	}
	if !(config.Sweep.DefaultConfidence > 0 && config.Sweep.DefaultConfidence < 1) {
		return errors.ConfigInvalid("DEFAULT_CONFIDENCE must be strictly between 0 and 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
