package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Webhook("yookassa", "payment.succeeded", OutcomeProcessed)
	m.Webhook("yookassa", "payment.succeeded", OutcomeDuplicate)
	m.Webhook("yookassa", "payment.succeeded", OutcomeDuplicate)
	m.Checkout("created")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEvents.WithLabelValues("yookassa", "payment.succeeded", OutcomeProcessed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.WebhookEvents.WithLabelValues("yookassa", "payment.succeeded", OutcomeDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checkouts.WithLabelValues("created")))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
