package main

import (
	"github.com/spf13/cobra"
)

var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Manage TLS certificates",
	Long: `Manage TLS certificates for the kiosk server.

By default a TLS-enabled kiosk generates a fresh self-signed certificate on
every start. These utilities cover the cases where that is not enough: a
stable pre-generated certificate, or inspecting certificate material.

Subcommands:
  generate - Generate a self-signed certificate and key pair
  info     - Display certificate details

Examples:
  # Pre-generate a certificate and point the config at it
  kiosk certs generate --host "localhost,127.0.0.1" --output certs/

  # Display certificate information
  kiosk certs info certs/cert.pem`,
}

func init() {
	rootCmd.AddCommand(certsCmd)
}
