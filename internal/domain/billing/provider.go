package billing

import "github.com/shopspring/decimal"

// Normalized provider event types.
const (
	EventWaitingForCapture = "payment.waiting_for_capture"
	EventSucceeded         = "payment.succeeded"
)

// PaymentRequest is what the application asks a provider to create.
type PaymentRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
	Metadata    map[string]string
	// IdempotenceKey lets the provider drop a repeated create call.
	IdempotenceKey string
}

// RemotePayment is the provider's view of a created payment.
type RemotePayment struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ConfirmationURL string `json:"confirmation_url"`
}

// ProviderEvent is a verified webhook delivery translated into provider
// independent terms.
type ProviderEvent struct {
	// ID identifies the delivery for deduplication.
	ID          string
	Type        string
	PaymentID   string
	Description string
	Metadata    map[string]string
}
