// Kiosk serves a single statically-known HTML document over HTTP(S).
//
// The document is read once at startup, hashed and precompressed, and then
// served to any method on any path with ETag validation and gzip negotiation.
// Prometheus metrics are exposed on a separate listener.
//
// Usage:
//
//	# Serve ./index.html on the default address
//	kiosk run
//
//	# Serve a specific document with TLS on a public address
//	kiosk run --index /srv/www/index.html --listen 0.0.0.0:443 --tls
//
//	# Show version information
//	kiosk version
//
//	# Pre-generate a self-signed certificate
//	kiosk certs generate --host "localhost,127.0.0.1"
package main

func main() {
	Execute()
}
