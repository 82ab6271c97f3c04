package config

import (
	"fmt"
	"net"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to all
// field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned
// together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if err := validateAddress(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: err.Error()})
	}
	if err := validateAddress(cfg.MetricsAddress); err != nil {
		errs = append(errs, FieldError{Field: "server.metrics_address", Message: err.Error()})
	}
	if cfg.ListenAddress != "" && cfg.ListenAddress == cfg.MetricsAddress {
		errs = append(errs, FieldError{
			Field:   "server.metrics_address",
			Message: "must differ from server.listen_address",
		})
	}
	if cfg.IndexPath == "" {
		errs = append(errs, FieldError{Field: "server.index_path", Message: "must not be empty"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must not be negative"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "must not be negative"})
	}

	// A cert file without a key file (or vice versa) cannot be loaded.
	if cfg.TLS.Enabled {
		if (cfg.TLS.CertFile == "") != (cfg.TLS.KeyFile == "") {
			errs = append(errs, FieldError{
				Field:   "server.tls",
				Message: "cert_file and key_file must be set together (leave both empty for a self-signed certificate)",
			})
		}
	}

	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	for i, b := range cfg.RequestDurationBuckets {
		if b <= 0 {
			errs = append(errs, FieldError{
				Field:   "metrics.request_duration_buckets",
				Message: fmt.Sprintf("bucket %d must be positive, got %g", i, b),
			})
		}
		if i > 0 && b <= cfg.RequestDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "metrics.request_duration_buckets",
				Message: "buckets must be strictly increasing",
			})
		}
	}

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Level),
		})
	}

	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text; got %q", cfg.Format),
		})
	}

	return errs
}

// validateAddress checks that an address is a parseable host:port pair.
func validateAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("must not be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("must be a host:port pair: %v", err)
	}
	return nil
}
