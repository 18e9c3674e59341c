// Package metrics exposes Prometheus instrumentation for calls made against
// the Vend API and for reconciliation outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	remoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vend_requests_total",
			Help: "Total number of requests issued to the Vend API.",
		},
		[]string{"method", "resource", "status"},
	)
	remoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vend_request_duration_seconds",
			Help:    "Histogram of Vend API request durations.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "resource", "status"},
	)
	reconciliationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vend_consignment_reconciliations_total",
			Help: "Consignment reconciliations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(remoteRequestsTotal)
	prometheus.MustRegister(remoteRequestDuration)
	prometheus.MustRegister(reconciliationsTotal)
}

// RecordRequest records one remote call. statusCode is 0 for transport failures.
func RecordRequest(method, resource string, statusCode int, duration time.Duration) {
	status := ClassifyStatus(statusCode)
	remoteRequestsTotal.WithLabelValues(method, resource, status).Inc()
	remoteRequestDuration.WithLabelValues(method, resource, status).Observe(duration.Seconds())
}

// RecordReconciliation records the outcome of a single consignment reconciliation.
func RecordReconciliation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	reconciliationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ClassifyStatus buckets an HTTP status code into 2xx..5xx, or "error" when
// no response was received.
func ClassifyStatus(statusCode int) string {
	if statusCode < 100 || statusCode >= 600 {
		return "error"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
