package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:3000"
	DefaultMetricsAddress  = "127.0.0.1:3001"
	DefaultIndexPath       = "index.html"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Metrics defaults
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "kiosk"
	DefaultMetricsSubsystem = "http"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultRequestDurationBuckets returns the default duration histogram
// buckets. Responses come straight from memory, so the range is tuned well
// below typical web-service latencies (50µs - 1s).
func DefaultRequestDurationBuckets() []float64 {
	return []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}
}

// ApplyDefaults fills in default values for any unset configuration fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = DefaultMetricsAddress
	}
	if cfg.Server.IndexPath == "" {
		cfg.Server.IndexPath = DefaultIndexPath
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.RequestDurationBuckets) == 0 {
		cfg.Metrics.RequestDurationBuckets = DefaultRequestDurationBuckets()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}

// NewDefault returns a configuration populated entirely with defaults, as
// used when no configuration file is present.
func NewDefault() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
	}
	ApplyDefaults(cfg)
	return cfg
}
