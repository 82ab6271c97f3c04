package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP handler for the Prometheus exposition endpoint.
//
// The handler serves all registered metrics in the standard Prometheus text
// format. Encoding failures are reported as a 500 on the scrape, never as a
// process failure.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			ErrorHandling: promhttp.HTTPErrorOnError,
		},
	)
}

// Mux returns the complete handler for the metrics listener: the exposition
// format at /metrics and 404 for every other path.
func (c *Collector) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return mux
}
