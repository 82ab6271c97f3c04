package cli

import "fmt"

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// StartupError represents a fatal error during server startup, before any
// listener is serving.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed at %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// NewStartupError creates a new StartupError.
func NewStartupError(stage string, err error) *StartupError {
	return &StartupError{Stage: stage, Err: err}
}
