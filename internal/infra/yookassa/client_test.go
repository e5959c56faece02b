package yookassa

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/billing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("shop-1", "secret-1", "hook-secret", WithBaseURL(srv.URL+"/v3"), WithHTTPClient(srv.Client()))
}

func TestCreatePayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/payments", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("Idempotence-Key"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "shop-1", user)
		assert.Equal(t, "secret-1", pass)

		var body createPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "499.00", body.Amount.Value)
		assert.Equal(t, "RUB", body.Amount.Currency)
		assert.Equal(t, "bank_card", body.PaymentMethodData.Type)
		assert.Equal(t, "redirect", body.Confirmation.Type)
		assert.Equal(t, "http://localhost:3000/thanks", body.Confirmation.ReturnURL)
		assert.Equal(t, "order-1", body.Metadata[billing.MetadataOrderID])

		_, _ = w.Write([]byte(`{"id":"2d5f","status":"pending","confirmation":{"type":"redirect","confirmation_url":"https://yoomoney.ru/checkout/2d5f"}}`))
	})

	rp, err := c.CreatePayment(t.Context(), billing.PaymentRequest{
		Amount:         decimal.RequireFromString("499"),
		Currency:       "RUB",
		Description:    "premium",
		ReturnURL:      "http://localhost:3000/thanks",
		Metadata:       map[string]string{billing.MetadataOrderID: "order-1"},
		IdempotenceKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "2d5f", rp.ID)
	assert.Equal(t, "pending", rp.Status)
	assert.Equal(t, "https://yoomoney.ru/checkout/2d5f", rp.ConfirmationURL)
}

func TestCreatePayment_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","id":"e1","code":"invalid_credentials","description":"bad key"}`))
	})

	_, err := c.CreatePayment(t.Context(), billing.PaymentRequest{Amount: decimal.NewFromInt(1), Currency: "RUB"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
}

func TestCapturePayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/payments/2d5f/capture", r.URL.Path)
		assert.Equal(t, "capture-2d5f", r.Header.Get("Idempotence-Key"))
		_, _ = w.Write([]byte(`{"id":"2d5f","status":"succeeded"}`))
	})

	require.NoError(t, c.CapturePayment(t.Context(), "2d5f"))
}

func TestParseWebhook(t *testing.T) {
	c := New("shop-1", "secret-1", "hook-secret")
	payload := []byte(`{"type":"notification","event":"payment.succeeded","object":{"id":"2d5f","status":"succeeded","description":"Id платежа #x, Id пользователя #1","metadata":{"order_id":"o","user_id":"1"}}}`)

	h := http.Header{}
	h.Set(SignatureHeader, Sign([]byte("hook-secret"), payload))

	ev, err := c.ParseWebhook(payload, h)
	require.NoError(t, err)
	assert.Equal(t, "payment.succeeded:2d5f", ev.ID)
	assert.Equal(t, billing.EventSucceeded, ev.Type)
	assert.Equal(t, "2d5f", ev.PaymentID)
	assert.Equal(t, "o", ev.Metadata[billing.MetadataOrderID])
}

func TestParseWebhook_Rejects(t *testing.T) {
	c := New("shop-1", "secret-1", "hook-secret")
	payload := []byte(`{"event":"payment.succeeded","object":{"id":"2d5f"}}`)

	tests := []struct {
		name      string
		signature string
	}{
		{"missing", ""},
		{"not hex", "zz"},
		{"wrong key", Sign([]byte("other"), payload)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			h.Set(SignatureHeader, tt.signature)
			_, err := c.ParseWebhook(payload, h)
			assert.True(t, errors.Is(err, apperr.ErrInvalidSignature))
		})
	}
}

func TestParseWebhook_Malformed(t *testing.T) {
	c := New("shop-1", "secret-1", "hook-secret")
	payload := []byte(`{"event":`)
	h := http.Header{}
	h.Set(SignatureHeader, Sign([]byte("hook-secret"), payload))

	_, err := c.ParseWebhook(payload, h)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
