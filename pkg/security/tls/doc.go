// Package tls provides certificate material for the Kiosk content server.
//
// When TLS is enabled without an operator-provided certificate, a fresh
// self-signed certificate for localhost and the loopback addresses is
// generated at process start, valid for 365 days from generation. The
// certificate lives only in memory and is regenerated on every start.
//
// Operators who need stable certificate material can point cert_file/key_file
// at a PEM pair, or pre-generate one with `kiosk certs generate`.
//
// Self-signed certificates are for development and loopback deployments; for
// anything public, terminate TLS with real certificates.
package tls
