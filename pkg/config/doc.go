// Package config provides YAML-based configuration for the Kiosk server.
//
// Configuration is loaded from a YAML file, filled in with defaults, overlaid
// with KIOSK_* environment variables, and validated field by field. A missing
// configuration file is not an error: every field has a usable default, so
// `kiosk run` works out of the box next to an index.html.
//
// # Configuration File
//
//	server:
//	  listen_address: "127.0.0.1:3000"
//	  metrics_address: "127.0.0.1:3001"
//	  index_path: "index.html"
//	  shutdown_timeout: 30s
//	  tls:
//	    enabled: false
//	metrics:
//	  enabled: true
//	  namespace: "kiosk"
//	  subsystem: "http"
//	logging:
//	  level: "info"
//	  format: "json"
//	watch:
//	  enabled: false
//
// # Environment Overrides
//
// Every field can be overridden with a KIOSK_SECTION_FIELD variable, for
// example KIOSK_SERVER_LISTEN_ADDRESS=0.0.0.0:8080 or
// KIOSK_SERVER_TLS_ENABLED=true. Environment variables always win over the
// file.
//
// # Validation
//
// Validate collects every problem into a ValidationError rather than stopping
// at the first, so operators see all mistakes in one run.
package config
