package config

import "time"

// Config is the root configuration structure for Kiosk. It covers the content
// server, the metrics listener, telemetry, and the index file watcher.
type Config struct {
	// Server contains the content server configuration: listen addresses,
	// the index document path, timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// Metrics contains the Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Watch contains the index file watcher configuration.
	Watch WatchConfig `yaml:"watch"`
}

// ServerConfig contains configuration for the content HTTP server and the
// metrics listener.
type ServerConfig struct {
	// ListenAddress is the address and port the content server listens on.
	// Format: "host:port" (e.g., "127.0.0.1:3000", "0.0.0.0:3000").
	// Default: "127.0.0.1:3000"
	ListenAddress string `yaml:"listen_address"`

	// MetricsAddress is the address and port the metrics server listens on.
	// It must differ from ListenAddress.
	// Default: "127.0.0.1:3001"
	MetricsAddress string `yaml:"metrics_address"`

	// IndexPath is the path to the HTML document served for every request.
	// The file is read once at startup.
	// Default: "index.html"
	IndexPath string `yaml:"index_path"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// kept-alive connection.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight requests
	// to drain during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TLS contains TLS termination settings for the content server.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS termination settings.
type TLSConfig struct {
	// Enabled controls whether the content server terminates TLS.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile and KeyFile point to a PEM certificate and key pair. When both
	// are empty and TLS is enabled, a fresh self-signed certificate for
	// localhost is generated at startup.
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether request metrics are recorded and the metrics
	// server is started.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name
	// (e.g., kiosk_http_requests_total).
	// Defaults: "kiosk", "http"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets are the histogram buckets for request duration
	// in seconds. The defaults are tuned for in-memory responses.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// WatchConfig contains the index file watcher configuration.
type WatchConfig struct {
	// Enabled controls whether changes to the index file on disk are logged.
	// The served content is never reloaded; a restart picks up changes.
	// Default: false
	Enabled bool `yaml:"enabled"`
}
