package main

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	kiosktls "mercator-hq/kiosk/pkg/security/tls"
)

var infoFlags struct {
	format string
}

var certsInfoCmd = &cobra.Command{
	Use:   "info [cert-file]",
	Short: "Display certificate details",
	Long: `Display detailed information about a TLS certificate.

Shows the subject, issuer, validity window, subject alternative names, and
algorithms of a PEM-encoded certificate, plus whether it is currently valid.

Output formats:
  - text (default): human-readable output
  - json: JSON output for scripting

Examples:
  kiosk certs info certs/cert.pem
  kiosk certs info --format json certs/cert.pem`,
	Args: cobra.ExactArgs(1),
	RunE: displayCertInfo,
}

func init() {
	certsCmd.AddCommand(certsInfoCmd)

	certsInfoCmd.Flags().StringVar(&infoFlags.format, "format", "text", "output format: text, json")
}

func displayCertInfo(cmd *cobra.Command, args []string) error {
	certPEM, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		return fmt.Errorf("failed to parse certificate PEM")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	info := kiosktls.ExtractCertificateInfo(cert)

	if infoFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("Subject:       %s\n", info.Subject)
	fmt.Printf("Issuer:        %s\n", info.Issuer)
	fmt.Printf("Serial Number: %s\n", info.SerialNumber)
	fmt.Printf("Not Before:    %s\n", info.NotBefore.Format(time.RFC3339))
	fmt.Printf("Not After:     %s\n", info.NotAfter.Format(time.RFC3339))
	if len(info.DNSNames) > 0 {
		fmt.Printf("DNS Names:     %s\n", strings.Join(info.DNSNames, ", "))
	}
	if len(info.IPAddresses) > 0 {
		fmt.Printf("IP Addresses:  %s\n", strings.Join(info.IPAddresses, ", "))
	}
	fmt.Printf("Signature:     %s\n", info.SignatureAlgorithm)
	fmt.Printf("Public Key:    %s\n", info.PublicKeyAlgorithm)

	if err := kiosktls.ValidateX509Certificate(cert); err != nil {
		fmt.Printf("Status:        INVALID (%v)\n", err)
	} else {
		fmt.Printf("Status:        valid\n")
	}

	return nil
}
