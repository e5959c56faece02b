// Package stripe adapts Stripe Checkout with manual capture to the payment
// provider contract.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/billing"

	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
	"github.com/stripe/stripe-go/v75/webhook"
)

const (
	ProviderName    = "stripe"
	SignatureHeader = "Stripe-Signature"

	defaultTimeout = 10 * time.Second
	productName    = "Premium"
)

type Provider struct {
	api           *client.API
	webhookSecret string
}

// New builds a provider on its own API client so the secret key never leaks
// into the package level stripe.Key.
func New(secretKey, webhookSecret string) *Provider {
	backends := stripego.NewBackends(&http.Client{Timeout: defaultTimeout})
	return NewWithClient(client.New(secretKey, backends), webhookSecret)
}

func NewWithClient(api *client.API, webhookSecret string) *Provider {
	return &Provider{api: api, webhookSecret: webhookSecret}
}

func (p *Provider) Name() string { return ProviderName }

// cancelURL adds canceled=1 to the return URL, keeping its existing query.
func cancelURL(returnURL string) string {
	u, err := url.Parse(returnURL)
	if err != nil {
		return returnURL
	}
	q := u.Query()
	q.Set("canceled", "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// CreatePayment opens a one-off Checkout session whose PaymentIntent is only
// authorized; the funds are captured after the waiting_for_capture event.
func (p *Provider) CreatePayment(ctx context.Context, req billing.PaymentRequest) (*billing.RemotePayment, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(req.ReturnURL),
		CancelURL:  stripego.String(cancelURL(req.ReturnURL)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(strings.ToLower(req.Currency)),
					UnitAmount: stripego.Int64(minorUnits(req.Amount)),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(productName),
					},
				},
				Quantity: stripego.Int64(1),
			},
		},
		PaymentIntentData: &stripego.CheckoutSessionPaymentIntentDataParams{
			CaptureMethod: stripego.String(string(stripego.PaymentIntentCaptureMethodManual)),
			Description:   stripego.String(req.Description),
			Metadata:      req.Metadata,
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotenceKey != "" {
		params.SetIdempotencyKey(req.IdempotenceKey)
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &billing.RemotePayment{
		ID:              s.ID,
		Status:          string(s.Status),
		ConfirmationURL: s.URL,
	}, nil
}

// CapturePayment captures an authorized PaymentIntent.
func (p *Provider) CapturePayment(ctx context.Context, paymentID string) error {
	params := &stripego.PaymentIntentCaptureParams{}
	params.Context = ctx
	params.SetIdempotencyKey("capture-" + paymentID)

	if _, err := p.api.PaymentIntents.Capture(paymentID, params); err != nil {
		return fmt.Errorf("stripe capture %s: %w", paymentID, err)
	}
	return nil
}

// ParseWebhook verifies the Stripe-Signature header and translates
// PaymentIntent events. Other event types come back with their raw type.
func (p *Provider) ParseWebhook(payload []byte, headers http.Header) (*billing.ProviderEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		headers.Get(SignatureHeader),
		p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidSignature, err)
	}

	out := &billing.ProviderEvent{
		ID:   event.ID,
		Type: NormalizeEventType(string(event.Type)),
	}
	if out.Type != billing.EventWaitingForCapture && out.Type != billing.EventSucceeded {
		return out, nil
	}

	var pi stripego.PaymentIntent
	if event.Data == nil {
		return nil, fmt.Errorf("event %s has no data: %w", event.ID, apperr.ErrValidation)
	}
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", apperr.ErrValidation)
	}
	out.PaymentID = pi.ID
	out.Description = pi.Description
	out.Metadata = pi.Metadata
	return out, nil
}

func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
