// Package yookassa is a minimal client for the YooKassa payments API v3:
// two-stage payments (create, capture) and webhook notifications.
package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movie-app/internal/domain/billing"

	"github.com/google/uuid"
)

const (
	ProviderName   = "yookassa"
	DefaultBaseURL = "https://api.yookassa.ru/v3"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4096
)

type Client struct {
	http          *http.Client
	baseURL       string
	shopID        string
	secretKey     string
	webhookSecret []byte
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(shopID, secretKey, webhookSecret string, opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{Timeout: defaultTimeout},
		baseURL:       DefaultBaseURL,
		shopID:        shopID,
		secretKey:     secretKey,
		webhookSecret: []byte(webhookSecret),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return ProviderName }

type amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type paymentMethodData struct {
	Type string `json:"type"`
}

type createPaymentRequest struct {
	Amount            amount            `json:"amount"`
	PaymentMethodData paymentMethodData `json:"payment_method_data"`
	Confirmation      confirmation      `json:"confirmation"`
	Description       string            `json:"description"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

type payment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Description  string            `json:"description"`
	Confirmation *confirmation     `json:"confirmation,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// APIError is the error body YooKassa returns with non-2xx responses.
type APIError struct {
	StatusCode  int    `json:"-"`
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yookassa: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// CreatePayment creates a two-stage bank card payment with a redirect
// confirmation.
func (c *Client) CreatePayment(ctx context.Context, req billing.PaymentRequest) (*billing.RemotePayment, error) {
	body := createPaymentRequest{
		Amount: amount{
			Value:    req.Amount.StringFixed(2),
			Currency: req.Currency,
		},
		PaymentMethodData: paymentMethodData{Type: "bank_card"},
		Confirmation: confirmation{
			Type:      "redirect",
			ReturnURL: req.ReturnURL,
		},
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	key := req.IdempotenceKey
	if key == "" {
		key = uuid.NewString()
	}

	var p payment
	if err := c.do(ctx, http.MethodPost, "payments", key, body, &p); err != nil {
		return nil, err
	}

	out := &billing.RemotePayment{ID: p.ID, Status: p.Status}
	if p.Confirmation != nil {
		out.ConfirmationURL = p.Confirmation.ConfirmationURL
	}
	return out, nil
}

// CapturePayment confirms a payment waiting for capture for its full amount.
func (c *Client) CapturePayment(ctx context.Context, paymentID string) error {
	var p payment
	return c.do(ctx, http.MethodPost, "payments/"+url.PathEscape(paymentID)+"/capture", "capture-"+paymentID, struct{}{}, &p)
}

func (c *Client) do(ctx context.Context, method, path, idempotenceKey string, in, out interface{}) error {
	endpoint := strings.TrimRight(c.baseURL, "/") + "/" + path

	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.shopID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", idempotenceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("yookassa %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
