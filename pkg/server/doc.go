// Package server implements the request path and listener lifecycle for the
// Kiosk single-page host.
//
// # Architecture
//
// Two Server instances run per process:
//
//   - the content server, which answers every method and path with the single
//     precomputed document, negotiating gzip via Accept-Encoding and
//     conditional responses via If-None-Match
//   - the metrics server, which exposes the Prometheus endpoint at /metrics
//     on its own address
//
// Both bind TCP listeners with tuned socket buffers (send buffer sized to the
// document, fixed 32 KiB receive buffer) and drain independently when their
// context is cancelled. The content server optionally terminates TLS with
// HTTP/2 enabled; a failed handshake costs only that connection.
//
// # Request Path
//
// The content handler never touches the filesystem, never allocates a body,
// and never fails: responses reference the shared content.Store slices
// directly. Metrics are recorded around every request (counter and in-flight
// gauge on entry, duration histogram and gauge decrement on exit), and the
// recording itself can never block or fail a response.
//
// # Basic Usage
//
//	store := content.Build(document)
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//
//	contentSrv := server.NewContentServer(&cfg.Server, store, collector, nil)
//	metricsSrv := server.NewMetricsServer(&cfg.Server, collector)
//
//	ctx := cli.SetupSignalHandler()
//	go metricsSrv.Start(ctx)
//	contentSrv.Start(ctx)
package server
