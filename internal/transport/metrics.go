package transport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DanielPopoola/payment-connector/internal/connector"
)

const (
	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
	outcomeGateway   = "gateway_error"
	outcomeTransport = "transport_error"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

// NewMetrics registers the connector collectors on reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connector",
			Name:      "gateway_requests_total",
			Help:      "Gateway calls by flow and outcome.",
		}, []string{"flow", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "connector",
			Name:      "gateway_request_duration_seconds",
			Help:      "Gateway call latency by flow.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"flow"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connector",
			Name:      "gateway_retries_total",
			Help:      "Gateway calls repeated after a retryable failure.",
		}, []string{"flow"}),
	}
	reg.MustRegister(m.requests, m.duration, m.retries)
	return m
}

func (m *Metrics) observe(flow connector.Flow, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(flow), outcome).Inc()
	m.duration.WithLabelValues(string(flow)).Observe(elapsed.Seconds())
}

func (m *Metrics) retried(flow connector.Flow) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(string(flow)).Inc()
}
