package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies default values, and validates the result. A missing file is not an
// error: the pure-default configuration is returned so the server can run
// without any file at all.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Booleans that default to true must be set before unmarshalling so an
	// absent key keeps the default and an explicit `false` wins.
	cfg := Config{
		Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention KIOSK_SECTION_FIELD (e.g., KIOSK_SERVER_LISTEN_ADDRESS) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file (missing file means pure defaults)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format KIOSK_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("KIOSK_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("KIOSK_SERVER_METRICS_ADDRESS"); val != "" {
		cfg.Server.MetricsAddress = val
	}
	if val := os.Getenv("KIOSK_SERVER_INDEX_PATH"); val != "" {
		cfg.Server.IndexPath = val
	}
	if val := os.Getenv("KIOSK_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("KIOSK_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("KIOSK_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("KIOSK_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("KIOSK_SERVER_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.TLS.Enabled = b
		}
	}
	if val := os.Getenv("KIOSK_SERVER_TLS_CERT_FILE"); val != "" {
		cfg.Server.TLS.CertFile = val
	}
	if val := os.Getenv("KIOSK_SERVER_TLS_KEY_FILE"); val != "" {
		cfg.Server.TLS.KeyFile = val
	}
	if val := os.Getenv("KIOSK_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("KIOSK_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("KIOSK_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := os.Getenv("KIOSK_WATCH_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Watch.Enabled = b
		}
	}
}
