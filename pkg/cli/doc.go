// Package cli provides shared helpers for the kiosk command-line interface:
// signal-driven shutdown contexts and error types that carry enough context
// for a useful process exit message.
package cli
