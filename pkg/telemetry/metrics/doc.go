// Package metrics provides Prometheus metrics for the Kiosk content server.
//
// The Collector tracks three request-level metrics, all labeled so operators
// can break traffic down by method and response status:
//
//   - kiosk_http_requests_total{method}
//   - kiosk_http_requests_in_flight{method}
//   - kiosk_http_request_duration_seconds{method,status}
//
// Recording happens around every request the content server handles:
// RecordRequest on entry, RecordResponse on exit. Both are concurrency-safe
// atomic updates and can never block or fail a response.
//
// The metrics are exposed on a dedicated listener through Mux, which serves
// the Prometheus text exposition format at /metrics and 404 elsewhere.
//
// # Basic Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//
//	start := time.Now()
//	collector.RecordRequest(r.Method)
//	// ... handle the request ...
//	collector.RecordResponse(r.Method, "200", start)
//
//	http.ListenAndServe(cfg.Server.MetricsAddress, collector.Mux())
package metrics
