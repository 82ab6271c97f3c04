package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"mercator-hq/kiosk/pkg/config"
	"mercator-hq/kiosk/pkg/content"
	kiosktls "mercator-hq/kiosk/pkg/security/tls"
	"mercator-hq/kiosk/pkg/telemetry/metrics"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ListenAddress:   "127.0.0.1:0",
		MetricsAddress:  "127.0.0.1:0",
		IndexPath:       "index.html",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxHeaderBytes:  config.DefaultMaxHeaderBytes,
	}
}

func testCollector() *metrics.Collector {
	return metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "http",
	}, nil)
}

// startServer runs srv.Start in the background and waits for the listener to
// bind, returning its base URL and the Start result channel.
func startServer(t *testing.T, ctx context.Context, srv *Server, scheme string) (string, <-chan error) {
	t.Helper()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not bind in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Sprintf("%s://%s", scheme, srv.Addr().String()), errChan
}

// TestSendBufferSize tests the clamp arithmetic.
func TestSendBufferSize(t *testing.T) {
	tests := []struct {
		name          string
		contentLength int
		want          int
	}{
		{name: "empty document floors at 32KiB", contentLength: 0, want: 32 * 1024},
		{name: "small document floors at 32KiB", contentLength: 1000, want: 32 * 1024},
		{name: "mid-size document doubles", contentLength: 100 * 1024, want: 200 * 1024},
		{name: "huge document caps at 2MiB", contentLength: 8 * 1024 * 1024, want: 2 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sendBufferSize(tt.contentLength); got != tt.want {
				t.Errorf("sendBufferSize(%d) = %d, want %d", tt.contentLength, got, tt.want)
			}
		})
	}
}

// TestContentServer_PlainLifecycle tests bind, serve, and graceful shutdown
// of the plain variant.
func TestContentServer_PlainLifecycle(t *testing.T) {
	store := content.Build([]byte(testDocument))
	srv := NewContentServer(testServerConfig(), store, testCollector(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	url, errChan := startServer(t, ctx, srv, "http")

	resp, err := http.Get(url + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != testDocument {
		t.Error("body does not equal the document")
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response missing request ID header")
	}

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start returned error after graceful shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

// TestContentServer_TLSLifecycle tests the TLS variant end to end with a
// fresh self-signed certificate.
func TestContentServer_TLSLifecycle(t *testing.T) {
	store := content.Build([]byte(testDocument))

	tlsConfig, err := kiosktls.LoadOrGenerate(&config.TLSConfig{Enabled: true}, nil)
	if err != nil {
		t.Fatalf("LoadOrGenerate failed: %v", err)
	}

	srv := NewContentServer(testServerConfig(), store, testCollector(), tlsConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, errChan := startServer(t, ctx, srv, "https")

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	resp, err := client.Get(url + "/")
	if err != nil {
		t.Fatalf("GET over TLS failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != testDocument {
		t.Error("body does not equal the document")
	}

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start returned error after graceful shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

// TestContentServer_TLSHandshakeFailureIsContained tests that a botched
// handshake drops only that connection.
func TestContentServer_TLSHandshakeFailureIsContained(t *testing.T) {
	store := content.Build([]byte(testDocument))

	tlsConfig, err := kiosktls.LoadOrGenerate(&config.TLSConfig{Enabled: true}, nil)
	if err != nil {
		t.Fatal(err)
	}

	srv := NewContentServer(testServerConfig(), store, testCollector(), tlsConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, _ := startServer(t, ctx, srv, "https")

	// Plain HTTP against the TLS listener fails the handshake.
	if _, err := http.Get("http" + url[len("https"):] + "/"); err == nil {
		t.Error("expected plaintext request against TLS listener to fail")
	}

	// The listener still accepts proper TLS connections afterwards.
	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	resp, err := client.Get(url + "/")
	if err != nil {
		t.Fatalf("TLS request after failed handshake: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

// TestMetricsServer_Routing tests the second server instance: exposition at
// /metrics, 404 elsewhere, independent shutdown.
func TestMetricsServer_Routing(t *testing.T) {
	collector := testCollector()
	collector.RecordRequest("GET")
	collector.RecordResponse("GET", "200", time.Now())

	srv := NewMetricsServer(testServerConfig(), collector)

	ctx, cancel := context.WithCancel(context.Background())
	url, errChan := startServer(t, ctx, srv, "http")

	resp, err := http.Get(url + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", resp.StatusCode)
	}
	if len(body) == 0 {
		t.Error("empty exposition body")
	}

	resp, err = http.Get(url + "/other")
	if err != nil {
		t.Fatalf("GET /other failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /other status = %d, want 404", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start returned error after graceful shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("metrics server did not shut down in time")
	}
}

// TestServer_StartTwice tests that a second Start is rejected.
func TestServer_StartTwice(t *testing.T) {
	store := content.Build([]byte(testDocument))
	srv := NewContentServer(testServerConfig(), store, testCollector(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startServer(t, ctx, srv, "http")

	if err := srv.Start(ctx); err == nil {
		t.Error("expected error from second Start")
	}
}

// TestServer_BadAddress tests that an unusable address fails startup.
func TestServer_BadAddress(t *testing.T) {
	cfg := testServerConfig()
	cfg.ListenAddress = "256.256.256.256:99999"

	store := content.Build([]byte(testDocument))
	srv := NewContentServer(cfg, store, testCollector(), nil)

	if err := srv.Start(context.Background()); err == nil {
		t.Error("expected error for unusable listen address")
	}
}
