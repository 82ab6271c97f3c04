package tls

import (
	"crypto/tls"
	"fmt"
	"log/slog"

	"mercator-hq/kiosk/pkg/config"
)

// ServerConfig builds a crypto/tls server configuration around a single
// certificate. TLS 1.2 is the floor, and both HTTP/2 and HTTP/1.1 are offered
// over ALPN.
func ServerConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
}

// LoadOrGenerate resolves the server certificate from configuration: an
// operator-provided cert/key pair when configured, otherwise a fresh
// self-signed certificate for loopback, regenerated on every process start.
// It returns nil when TLS is disabled.
func LoadOrGenerate(cfg *config.TLSConfig, logger *slog.Logger) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate pair: %w", err)
		}
		if err := ValidateCertificate(&cert); err != nil {
			return nil, fmt.Errorf("configured certificate is not usable: %w", err)
		}
		logger.Info("loaded TLS certificate", "cert_file", cfg.CertFile)
		return ServerConfig(cert), nil
	}

	generated, err := GenerateLoopback()
	if err != nil {
		return nil, fmt.Errorf("failed to generate self-signed certificate: %w", err)
	}
	logger.Info("generated self-signed certificate for localhost",
		"not_after", generated.Leaf.NotAfter,
	)
	return ServerConfig(generated.Certificate), nil
}
