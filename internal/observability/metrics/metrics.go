package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deposit_ledger_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deposit_ledger_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	depositsOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deposit_ledger_deposits_opened_total",
		Help: "Count of deposits opened, by deposit type",
	}, []string{"deposit_type"})

	depositsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deposit_ledger_deposits_closed_total",
		Help: "Count of deposits closed, by deposit type",
	}, []string{"deposit_type"})

	depositRequestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deposit_ledger_deposit_request_decisions_total",
		Help: "Count of pending deposit request decisions",
	}, []string{"decision"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDepositOpened increments the opened counter for a deposit type.
func ObserveDepositOpened(depositType string) {
	depositsOpened.WithLabelValues(depositType).Inc()
}

// ObserveDepositClosed increments the closed counter for a deposit type.
func ObserveDepositClosed(depositType string) {
	depositsClosed.WithLabelValues(depositType).Inc()
}

// ObserveDepositApproved records an approved pending request.
func ObserveDepositApproved() {
	depositRequestDecisions.WithLabelValues("approved").Inc()
}

// ObserveDepositRejected records a rejected pending request.
func ObserveDepositRejected() {
	depositRequestDecisions.WithLabelValues("rejected").Inc()
}
