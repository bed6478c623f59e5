package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biosync",
		Subsystem: "fetch",
		Name:      "category_failures_total",
		Help:      "Provider gateway fetch failures per category. These degrade to empty results, never errors.",
	}, []string{"category"})
	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "biosync",
		Subsystem: "fetch",
		Name:      "category_duration_seconds",
		Help:      "Wall time per category fetch against the provider gateway.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"category"})
	droppedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biosync",
		Subsystem: "normalize",
		Name:      "dropped_records_total",
		Help:      "Raw records dropped during normalization for lacking a parseable date.",
	}, []string{"category"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biosync",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method and status.",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(fetchFailures, fetchDuration, droppedRecords, httpRequests)
}

// RecordFetchFailure counts a recovered per-category fetch failure.
func RecordFetchFailure(category string) {
	fetchFailures.WithLabelValues(category).Inc()
}

// RecordFetchDuration observes how long one category fetch took.
func RecordFetchDuration(category string, d time.Duration) {
	fetchDuration.WithLabelValues(category).Observe(d.Seconds())
}

// RecordDroppedRecord counts a raw record discarded by the normalizer.
func RecordDroppedRecord(category string) {
	droppedRecords.WithLabelValues(category).Inc()
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(method, status string) {
	httpRequests.WithLabelValues(method, status).Inc()
}
