package config

import (
	"os"
	"strconv"
	"time"

	"epilag/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Epidata  EpidataConfig
	Metadata MetadataConfig
	Session  SessionConfig
	Ops      OpsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EpidataConfig holds upstream signal source settings
type EpidataConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MetadataConfig holds the signal metadata source settings
type MetadataConfig struct {
	File string
}

// SessionConfig holds analysis session store settings
type SessionConfig struct {
	TTL time.Duration
}

// OpsConfig holds the operational endpoint settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Epidata: EpidataConfig{
			BaseURL: getEnvOrDefault("EPIDATA_BASE_URL", "https://api.delphi.cmu.edu/epidata"),
			Timeout: getEnvDurationOrDefault("EPIDATA_TIMEOUT", 30*time.Second),
		},
		Metadata: MetadataConfig{
			File: os.Getenv("METADATA_FILE"),
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Metadata.File == "" {
		return errors.ConfigInvalid("METADATA_FILE is required")
	}
	if config.Epidata.BaseURL == "" {
		return errors.ConfigInvalid("EPIDATA_BASE_URL cannot be empty")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
