package stripe

import (
	"strings"

	"movie-app/internal/domain/billing"
)

const (
	eventAmountCapturable = "payment_intent.amount_capturable_updated"
	eventIntentSucceeded  = "payment_intent.succeeded"
)

// NormalizeEventType maps a Stripe event type onto the provider independent
// event names. Types the payment flow does not react to are returned as is.
func NormalizeEventType(t string) string {
	switch strings.TrimSpace(t) {
	case eventAmountCapturable:
		return billing.EventWaitingForCapture
	case eventIntentSucceeded:
		return billing.EventSucceeded
	default:
		return strings.TrimSpace(t)
	}
}
