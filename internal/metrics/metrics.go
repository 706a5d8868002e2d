package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for HTTP requests and rejected records, a gauge for
// the number of stored employees, and histograms for request and store
// operation durations.
type Metrics struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	StoredEmployees    prometheus.Gauge
	ValidationFailures *prometheus.CounterVec
	StoreOpDuration    *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of HTTP requests served by the employee API.",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the employee API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StoredEmployees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hestia_stored_employees",
			Help: "Number of employee records currently held in memory.",
		}),
		ValidationFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_validation_failures_total",
			Help: "Total number of rejected employee fields.",
		}, []string{"field"}),
		StoreOpDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_store_op_duration_seconds",
			Help:    "Duration of in-memory store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}), // op: 'list', 'create', 'update', 'delete'
	}

	return metrics
}
