package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	kiosktls "mercator-hq/kiosk/pkg/security/tls"
)

var generateFlags struct {
	hosts    string
	validity int
	output   string
}

var certsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a self-signed certificate",
	Long: `Generate a self-signed TLS certificate and private key.

Use this when the per-start self-signed certificate is not enough, for
example when clients should be able to pin one certificate across restarts.
Point server.tls.cert_file and server.tls.key_file at the generated pair.

Self-signed certificates are for development and loopback use only.

Examples:
  # Generate a certificate for localhost
  kiosk certs generate

  # Generate with multiple hosts
  kiosk certs generate --host "localhost,127.0.0.1,kiosk.local"

  # Custom validity and output directory
  kiosk certs generate --validity 30 --output /etc/kiosk/certs/`,
	RunE: generateCertificate,
}

func init() {
	certsCmd.AddCommand(certsGenerateCmd)

	certsGenerateCmd.Flags().StringVar(&generateFlags.hosts, "host", "localhost,127.0.0.1", "comma-separated hostnames and IPs")
	certsGenerateCmd.Flags().IntVar(&generateFlags.validity, "validity", 365, "validity in days")
	certsGenerateCmd.Flags().StringVarP(&generateFlags.output, "output", "o", "certs", "output directory")
}

func generateCertificate(cmd *cobra.Command, args []string) error {
	var hosts []string
	for _, host := range strings.Split(generateFlags.hosts, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}

	if generateFlags.validity <= 0 {
		return fmt.Errorf("validity must be positive, got %d", generateFlags.validity)
	}

	gen, err := kiosktls.GenerateSelfSigned(hosts, time.Duration(generateFlags.validity)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate certificate: %w", err)
	}

	if err := os.MkdirAll(generateFlags.output, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	certPath := filepath.Join(generateFlags.output, "cert.pem")
	if err := os.WriteFile(certPath, gen.CertPEM, 0644); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}

	keyPath := filepath.Join(generateFlags.output, "key.pem")
	if err := os.WriteFile(keyPath, gen.KeyPEM, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	fmt.Printf("✓ Certificate generated: %s\n", certPath)
	fmt.Printf("✓ Private key generated: %s\n", keyPath)
	fmt.Printf("Hosts: %s\n", strings.Join(hosts, ", "))
	fmt.Printf("Not After: %s\n", gen.Leaf.NotAfter.Format("2006-01-02 15:04:05 MST"))

	return nil
}
