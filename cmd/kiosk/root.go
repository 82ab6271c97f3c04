package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Kiosk - single-page HTTP(S) server",
	Long: `Kiosk is a minimal, low-latency server for exactly one HTML document.

The document is read once at startup and precomputed into every servable
representation (raw bytes, gzip, ETag), so the request path does no repeated
work. It supports:
  - ETag validation (If-None-Match conditional requests)
  - gzip content negotiation with a precompressed body
  - Prometheus metrics on a dedicated listener
  - Optional TLS with a fresh self-signed certificate per start
  - Graceful shutdown on SIGINT/SIGTERM`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
