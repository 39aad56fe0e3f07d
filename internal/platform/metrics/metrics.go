package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizsuite_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bizsuite_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	storeFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizsuite_store_flushes_total",
		Help: "Count of full-document flushes by operation and result",
	}, []string{"op", "result"})

	storeRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bizsuite_store_records",
		Help: "Number of records per collection after the last flush",
	}, []string{"collection"})
)

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveFlush counts one store flush attempt with its result.
func ObserveFlush(op, result string) {
	storeFlushes.WithLabelValues(op, result).Inc()
}

// SetRecordCount updates the per-collection record gauge.
func SetRecordCount(collection string, count int) {
	storeRecords.WithLabelValues(collection).Set(float64(count))
}
