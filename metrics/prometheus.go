package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Data access metrics
	datastoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_datastore_errors_total",
			Help: "Total number of failed datastore calls by collection and error kind",
		},
		[]string{"collection", "kind"},
	)

	staleFetchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "regdesk_stale_fetches_total",
			Help: "Fetch results discarded because a newer fetch was issued for the same view",
		},
	)

	reportCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_report_cache_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdesk_exports_total",
			Help: "CSV exports by subject",
		},
		[]string{"subject"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, route string, statusCode int, durationSeconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, statusClass(statusCode)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	}
	return "unknown"
}

// RecordDatastoreError counts a failed datastore call
func RecordDatastoreError(collection, kind string) {
	datastoreErrorsTotal.WithLabelValues(collection, kind).Inc()
}

// RecordStaleFetch counts a discarded out-of-order fetch result
func RecordStaleFetch() {
	staleFetchesTotal.Inc()
}

// RecordReportCache counts a report cache hit or miss
func RecordReportCache(hit bool) {
	if hit {
		reportCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	reportCacheTotal.WithLabelValues("miss").Inc()
}

// RecordExport counts a CSV export
func RecordExport(subject string) {
	exportsTotal.WithLabelValues(subject).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
