package yookassa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/billing"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw body keyed with the
// webhook secret.
const SignatureHeader = "X-Webhook-Signature"

type notification struct {
	Type   string  `json:"type"`
	Event  string  `json:"event"`
	Object payment `json:"object"`
}

// Sign returns the signature a notification body must carry.
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhook verifies and decodes a notification. YooKassa event names are
// already the normalized ones, so they pass through unchanged.
func (c *Client) ParseWebhook(payload []byte, headers http.Header) (*billing.ProviderEvent, error) {
	got, err := hex.DecodeString(headers.Get(SignatureHeader))
	if err != nil || len(got) == 0 {
		return nil, apperr.ErrInvalidSignature
	}
	want, _ := hex.DecodeString(Sign(c.webhookSecret, payload))
	if !hmac.Equal(got, want) {
		return nil, apperr.ErrInvalidSignature
	}

	var n notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", apperr.ErrValidation)
	}
	if n.Event == "" || n.Object.ID == "" {
		return nil, fmt.Errorf("notification without event or object id: %w", apperr.ErrValidation)
	}

	return &billing.ProviderEvent{
		ID:          n.Event + ":" + n.Object.ID,
		Type:        n.Event,
		PaymentID:   n.Object.ID,
		Description: n.Object.Description,
		Metadata:    n.Object.Metadata,
	}, nil
}
