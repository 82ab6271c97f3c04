package main

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateCertificate(t *testing.T) {
	dir := t.TempDir()

	origFlags := generateFlags
	defer func() { generateFlags = origFlags }()

	generateFlags.hosts = "localhost,127.0.0.1"
	generateFlags.validity = 30
	generateFlags.output = dir

	if err := generateCertificate(certsGenerateCmd, nil); err != nil {
		t.Fatalf("generateCertificate failed: %v", err)
	}

	certPEM, err := os.ReadFile(filepath.Join(dir, "cert.pem"))
	if err != nil {
		t.Fatalf("cert.pem not written: %v", err)
	}
	block, _ := pem.Decode(certPEM)
	if block == nil {
		t.Fatal("cert.pem is not PEM")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("cert.pem does not parse: %v", err)
	}
	if len(cert.DNSNames) != 1 || cert.DNSNames[0] != "localhost" {
		t.Errorf("DNSNames = %v, want [localhost]", cert.DNSNames)
	}
	if len(cert.IPAddresses) != 1 {
		t.Errorf("IPAddresses = %v, want one entry", cert.IPAddresses)
	}

	// Private key gets restrictive permissions.
	keyInfo, err := os.Stat(filepath.Join(dir, "key.pem"))
	if err != nil {
		t.Fatalf("key.pem not written: %v", err)
	}
	if keyInfo.Mode().Perm() != 0600 {
		t.Errorf("key.pem mode = %o, want 0600", keyInfo.Mode().Perm())
	}
}

func TestGenerateCertificate_InvalidValidity(t *testing.T) {
	origFlags := generateFlags
	defer func() { generateFlags = origFlags }()

	generateFlags.hosts = "localhost"
	generateFlags.validity = 0
	generateFlags.output = t.TempDir()

	if err := generateCertificate(certsGenerateCmd, nil); err == nil {
		t.Error("expected error for zero validity")
	}
}

func TestDisplayCertInfo(t *testing.T) {
	dir := t.TempDir()

	origGen := generateFlags
	defer func() { generateFlags = origGen }()
	generateFlags.hosts = "localhost"
	generateFlags.validity = 10
	generateFlags.output = dir
	if err := generateCertificate(certsGenerateCmd, nil); err != nil {
		t.Fatal(err)
	}

	origInfo := infoFlags
	defer func() { infoFlags = origInfo }()

	for _, format := range []string{"text", "json"} {
		infoFlags.format = format
		if err := displayCertInfo(certsInfoCmd, []string{filepath.Join(dir, "cert.pem")}); err != nil {
			t.Errorf("displayCertInfo (%s) failed: %v", format, err)
		}
	}
}

func TestDisplayCertInfo_NotPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pem")
	if err := os.WriteFile(path, []byte("not a certificate"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := displayCertInfo(certsInfoCmd, []string{path}); err == nil {
		t.Error("expected error for non-PEM input")
	}
}
