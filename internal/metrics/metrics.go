package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Webhook outcomes.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Checkouts     *prometheus.CounterVec
	WebhookEvents *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		Checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_checkouts_total",
				Help: "Checkout attempts by result",
			},
			[]string{"result"},
		),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Payment provider webhook deliveries by outcome",
			},
			[]string{"provider", "type", "outcome"},
		),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Checkouts, m.WebhookEvents)
	return m
}

func (m *Metrics) Webhook(provider, eventType, outcome string) {
	m.WebhookEvents.WithLabelValues(provider, eventType, outcome).Inc()
}

func (m *Metrics) Checkout(result string) {
	m.Checkouts.WithLabelValues(result).Inc()
}
