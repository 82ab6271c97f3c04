package tls

import (
	stdtls "crypto/tls"
	"crypto/x509"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/kiosk/pkg/config"
)

// TestGenerateSelfSigned tests SAN assignment and the validity window.
func TestGenerateSelfSigned(t *testing.T) {
	before := time.Now()
	gen, err := GenerateSelfSigned([]string{"localhost", "127.0.0.1"}, 0)
	if err != nil {
		t.Fatalf("GenerateSelfSigned failed: %v", err)
	}

	if gen.Leaf.Subject.CommonName != "localhost" {
		t.Errorf("CommonName = %q, want localhost", gen.Leaf.Subject.CommonName)
	}
	if len(gen.Leaf.DNSNames) != 1 || gen.Leaf.DNSNames[0] != "localhost" {
		t.Errorf("DNSNames = %v, want [localhost]", gen.Leaf.DNSNames)
	}
	if len(gen.Leaf.IPAddresses) != 1 || !gen.Leaf.IPAddresses[0].Equal(net.IPv4(127, 0, 0, 1)) {
		t.Errorf("IPAddresses = %v, want [127.0.0.1]", gen.Leaf.IPAddresses)
	}

	// Valid for 365 days from generation.
	wantNotAfter := gen.Leaf.NotBefore.Add(DefaultValidity)
	if !gen.Leaf.NotAfter.Equal(wantNotAfter) {
		t.Errorf("NotAfter = %v, want NotBefore+365d = %v", gen.Leaf.NotAfter, wantNotAfter)
	}
	if gen.Leaf.NotBefore.After(time.Now()) || gen.Leaf.NotBefore.Before(before.Add(-time.Minute)) {
		t.Errorf("NotBefore = %v, want around now", gen.Leaf.NotBefore)
	}

	if err := ValidateCertificate(&gen.Certificate); err != nil {
		t.Errorf("generated certificate failed validation: %v", err)
	}
}

// TestGenerateSelfSigned_FreshPerCall tests that each generation produces a
// distinct certificate.
func TestGenerateSelfSigned_FreshPerCall(t *testing.T) {
	first, err := GenerateLoopback()
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateLoopback()
	if err != nil {
		t.Fatal(err)
	}

	if first.Leaf.SerialNumber.Cmp(second.Leaf.SerialNumber) == 0 {
		t.Error("two generations produced the same serial number")
	}
}

// TestGenerateSelfSigned_NoHosts tests the empty-host error path.
func TestGenerateSelfSigned_NoHosts(t *testing.T) {
	if _, err := GenerateSelfSigned(nil, 0); err == nil {
		t.Error("expected error for empty host list")
	}
}

// TestGenerateSelfSigned_PEMRoundTrip tests that the PEM output loads back as
// a usable key pair.
func TestGenerateSelfSigned_PEMRoundTrip(t *testing.T) {
	gen, err := GenerateLoopback()
	if err != nil {
		t.Fatal(err)
	}

	cert, err := stdtls.X509KeyPair(gen.CertPEM, gen.KeyPEM)
	if err != nil {
		t.Fatalf("PEM pair did not load: %v", err)
	}
	if err := ValidateCertificate(&cert); err != nil {
		t.Errorf("round-tripped certificate failed validation: %v", err)
	}
}

// TestValidateX509Certificate tests the expiration checks.
func TestValidateX509Certificate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		notBefore time.Time
		notAfter  time.Time
		wantErr   bool
	}{
		{name: "currently valid", notBefore: now.Add(-time.Hour), notAfter: now.Add(time.Hour)},
		{name: "expired", notBefore: now.Add(-2 * time.Hour), notAfter: now.Add(-time.Hour), wantErr: true},
		{name: "not yet valid", notBefore: now.Add(time.Hour), notAfter: now.Add(2 * time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert := &x509.Certificate{NotBefore: tt.notBefore, NotAfter: tt.notAfter}
			err := ValidateX509Certificate(cert)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateX509Certificate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadOrGenerate tests certificate resolution from configuration.
func TestLoadOrGenerate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("disabled", func(t *testing.T) {
		cfg, err := LoadOrGenerate(&config.TLSConfig{Enabled: false}, logger)
		if err != nil {
			t.Fatalf("LoadOrGenerate failed: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil tls.Config when TLS is disabled")
		}
	})

	t.Run("self-signed fallback", func(t *testing.T) {
		cfg, err := LoadOrGenerate(&config.TLSConfig{Enabled: true}, logger)
		if err != nil {
			t.Fatalf("LoadOrGenerate failed: %v", err)
		}
		if cfg == nil || len(cfg.Certificates) != 1 {
			t.Fatal("expected a tls.Config with one certificate")
		}
		if cfg.MinVersion != stdtls.VersionTLS12 {
			t.Errorf("MinVersion = %x, want TLS 1.2", cfg.MinVersion)
		}
		if len(cfg.NextProtos) == 0 || cfg.NextProtos[0] != "h2" {
			t.Errorf("NextProtos = %v, want h2 first", cfg.NextProtos)
		}
	})

	t.Run("configured pair", func(t *testing.T) {
		gen, err := GenerateLoopback()
		if err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		certFile := filepath.Join(dir, "cert.pem")
		keyFile := filepath.Join(dir, "key.pem")
		if err := os.WriteFile(certFile, gen.CertPEM, 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(keyFile, gen.KeyPEM, 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadOrGenerate(&config.TLSConfig{
			Enabled:  true,
			CertFile: certFile,
			KeyFile:  keyFile,
		}, logger)
		if err != nil {
			t.Fatalf("LoadOrGenerate failed: %v", err)
		}
		if cfg == nil || len(cfg.Certificates) != 1 {
			t.Fatal("expected a tls.Config with the loaded certificate")
		}
	})

	t.Run("missing pair", func(t *testing.T) {
		_, err := LoadOrGenerate(&config.TLSConfig{
			Enabled:  true,
			CertFile: "/nonexistent/cert.pem",
			KeyFile:  "/nonexistent/key.pem",
		}, logger)
		if err == nil {
			t.Error("expected error for missing certificate files")
		}
	})
}
