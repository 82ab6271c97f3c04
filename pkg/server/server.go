// Package server provides the HTTP servers for the Kiosk single-page host.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/net/http2"

	"mercator-hq/kiosk/pkg/config"
	"mercator-hq/kiosk/pkg/content"
	"mercator-hq/kiosk/pkg/telemetry/metrics"
)

// HTTP/2 flow-control windows. The document is small but concurrency may be
// high, so per-connection limits are kept generous.
const (
	http2StreamWindow     = 1 * 1024 * 1024
	http2ConnectionWindow = 2 * 1024 * 1024
)

// Server is one HTTP listener with its handler and lifecycle. The process
// runs two instances: the content server (optionally TLS-terminated) and the
// metrics server. Each drains independently on shutdown.
type Server struct {
	name           string
	addr           string
	cfg            *config.ServerConfig
	handler        http.Handler
	tlsConfig      *tls.Config
	sendBufferSize int

	httpServer   *http.Server
	shutdownOnce sync.Once

	mu        sync.RWMutex
	isRunning bool
	listener  net.Listener
}

// NewContentServer creates the server that serves the document. The handler
// chain is recovery, request ID, logging, then the content handler. A non-nil
// tlsConfig selects the TLS variant.
func NewContentServer(cfg *config.ServerConfig, store *content.Store, collector *metrics.Collector, tlsConfig *tls.Config) *Server {
	handler := ContentHandler(store, collector)
	handler = LoggingMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	handler = RecoveryMiddleware(handler)

	return &Server{
		name:           "content",
		addr:           cfg.ListenAddress,
		cfg:            cfg,
		handler:        handler,
		tlsConfig:      tlsConfig,
		sendBufferSize: sendBufferSize(store.UncompressedLength),
	}
}

// NewMetricsServer creates the server that exposes the Prometheus endpoint on
// its own address. Scrape responses are small, so the buffer clamp floor
// applies.
func NewMetricsServer(cfg *config.ServerConfig, collector *metrics.Collector) *Server {
	return &Server{
		name:           "metrics",
		addr:           cfg.MetricsAddress,
		cfg:            cfg,
		handler:        collector.Mux(),
		sendBufferSize: sendBufferSize(0),
	}
}

// Start binds the listener and serves until ctx is cancelled or the listener
// fails. On cancellation it stops accepting new connections and drains
// in-flight requests within the configured shutdown timeout, then returns
// nil.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("%s server is already running", s.name)
	}
	s.isRunning = true
	s.mu.Unlock()

	listener, err := newListener(ctx, s.addr, s.sendBufferSize)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:        s.handler,
		ReadTimeout:    s.cfg.ReadTimeout,
		WriteTimeout:   s.cfg.WriteTimeout,
		IdleTimeout:    s.cfg.IdleTimeout,
		MaxHeaderBytes: s.cfg.MaxHeaderBytes,
	}

	if s.tlsConfig != nil {
		s.httpServer.TLSConfig = s.tlsConfig.Clone()
		if err := http2.ConfigureServer(s.httpServer, &http2.Server{
			MaxUploadBufferPerStream:     http2StreamWindow,
			MaxUploadBufferPerConnection: http2ConnectionWindow,
		}); err != nil {
			listener.Close()
			return fmt.Errorf("failed to configure HTTP/2: %w", err)
		}
		// Handshakes run per connection inside Serve; a failed handshake
		// drops that connection only.
		listener = tls.NewListener(listener, s.httpServer.TLSConfig)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	slog.Info("server listening",
		"server", s.name,
		"address", listener.Addr().String(),
		"tls_enabled", s.tlsConfig != nil,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("%s server error: %w", s.name, err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown requested", "server", s.name)
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		running := s.isRunning
		s.mu.Unlock()
		if !running || s.httpServer == nil {
			return
		}

		slog.Info("draining connections",
			"server", s.name,
			"timeout", s.cfg.ShutdownTimeout.String(),
		)

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("%s server shutdown error: %w", s.name, err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped", "server", s.name)
	})

	return shutdownErr
}

// Addr returns the bound listener address, or nil before Start has bound it.
// Useful with a ":0" listen address.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
