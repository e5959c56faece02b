// Package service holds the application use cases that sit between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"movie-app/internal/apperr"
	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/users"
	"movie-app/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderStore interface {
	Create(ctx context.Context, o *billing.Order) error
	SetProviderPayment(ctx context.Context, id uuid.UUID, provider, paymentID string) error
	MarkPaid(ctx context.Context, id uuid.UUID) (*billing.Order, bool, error)
	ListAll(ctx context.Context) ([]billing.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]billing.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (*billing.Order, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id uint) (*users.User, error)
}

// EventLedger records processed webhook deliveries. Claim reports false when
// the event was already claimed.
type EventLedger interface {
	Claim(ctx context.Context, provider, eventID, eventType string) (bool, error)
	Release(ctx context.Context, provider, eventID string) error
}

type PaymentProvider interface {
	Name() string
	CreatePayment(ctx context.Context, req billing.PaymentRequest) (*billing.RemotePayment, error)
	CapturePayment(ctx context.Context, paymentID string) error
	// ParseWebhook returns apperr.ErrInvalidSignature for unverifiable payloads.
	ParseWebhook(payload []byte, headers http.Header) (*billing.ProviderEvent, error)
}

type CheckoutRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	// Status is accepted for compatibility with older clients and must be
	// PENDING when present.
	Status string `json:"status"`
}

type Confirmation struct {
	Type            string `json:"type"`
	ConfirmationURL string `json:"confirmation_url"`
}

type CheckoutResult struct {
	OrderID      uuid.UUID    `json:"orderId"`
	PaymentID    string       `json:"id"`
	Status       string       `json:"status"`
	Confirmation Confirmation `json:"confirmation"`
}

type PaymentService struct {
	orders    OrderStore
	users     UserGetter
	ledger    EventLedger
	provider  PaymentProvider
	metrics   *metrics.Metrics
	log       *zap.Logger
	returnURL string
	currency  string
}

type PaymentConfig struct {
	ReturnURL string
	Currency  string
}

func NewPaymentService(
	orders OrderStore,
	userGetter UserGetter,
	ledger EventLedger,
	provider PaymentProvider,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg PaymentConfig,
) *PaymentService {
	currency := strings.ToUpper(cfg.Currency)
	if currency == "" {
		currency = "RUB"
	}
	return &PaymentService{
		orders:    orders,
		users:     userGetter,
		ledger:    ledger,
		provider:  provider,
		metrics:   m,
		log:       log.With(zap.String("provider", provider.Name())),
		returnURL: cfg.ReturnURL,
		currency:  currency,
	}
}

// Checkout creates a PENDING order and the matching remote payment, and
// returns where the buyer has to be redirected. If the provider rejects the
// payment the order is removed again.
func (s *PaymentService) Checkout(ctx context.Context, req CheckoutRequest, userID uint) (*CheckoutResult, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		s.metrics.Checkout("invalid")
		return nil, fmt.Errorf("amount must be positive: %w", apperr.ErrValidation)
	}
	if req.Status != "" && billing.OrderStatus(strings.ToUpper(req.Status)) != billing.StatusPending {
		s.metrics.Checkout("invalid")
		return nil, fmt.Errorf("new orders can only be %s: %w", billing.StatusPending, apperr.ErrValidation)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.currency
	}
	if len(currency) != 3 {
		s.metrics.Checkout("invalid")
		return nil, fmt.Errorf("currency %q: %w", req.Currency, apperr.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsHasPremium {
		s.metrics.Checkout("conflict")
		return nil, fmt.Errorf("user %d already has premium: %w", userID, apperr.ErrConflict)
	}

	order := &billing.Order{
		ID:       uuid.New(),
		Status:   billing.StatusPending,
		Amount:   amount,
		Currency: currency,
		UserID:   user.ID,
		Provider: s.provider.Name(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	corr := billing.Correlation{OrderID: order.ID, UserID: user.ID}
	remote, err := s.provider.CreatePayment(ctx, billing.PaymentRequest{
		Amount:         order.Amount,
		Currency:       order.Currency,
		Description:    corr.Description(),
		ReturnURL:      s.returnURL,
		Metadata:       corr.Metadata(),
		IdempotenceKey: order.ID.String(),
	})
	if err != nil {
		s.metrics.Checkout("provider_error")
		if _, delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("failed to remove order after provider error",
				zap.String("order_id", order.ID.String()), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create remote payment: %w", err)
	}

	if err := s.orders.SetProviderPayment(ctx, order.ID, s.provider.Name(), remote.ID); err != nil {
		// Webhooks correlate through metadata, so the order stays usable.
		s.log.Warn("failed to store provider payment id",
			zap.String("order_id", order.ID.String()),
			zap.String("payment_id", remote.ID),
			zap.Error(err))
	}

	s.metrics.Checkout("created")
	s.log.Info("checkout created",
		zap.String("order_id", order.ID.String()),
		zap.Uint("user_id", user.ID),
		zap.String("payment_id", remote.ID),
		zap.String("amount", order.Amount.StringFixed(2)))

	return &CheckoutResult{
		OrderID:   order.ID,
		PaymentID: remote.ID,
		Status:    remote.Status,
		Confirmation: Confirmation{
			Type:            "redirect",
			ConfirmationURL: remote.ConfirmationURL,
		},
	}, nil
}

// HandleWebhook verifies and applies one provider delivery. A nil error means
// the delivery is acknowledged, including ignored and duplicate events. On a
// transient failure the claim is released so a redelivery is processed.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	provider := s.provider.Name()

	ev, err := s.provider.ParseWebhook(payload, headers)
	if err != nil {
		s.metrics.Webhook(provider, "unknown", metrics.OutcomeRejected)
		s.log.Warn("webhook rejected", zap.Error(err))
		return err
	}

	log := s.log.With(zap.String("event_id", ev.ID), zap.String("event_type", ev.Type))

	if ev.Type != billing.EventWaitingForCapture && ev.Type != billing.EventSucceeded {
		s.metrics.Webhook(provider, "other", metrics.OutcomeIgnored)
		log.Debug("webhook event ignored")
		return nil
	}

	claimed, err := s.ledger.Claim(ctx, provider, ev.ID, ev.Type)
	if err != nil {
		s.metrics.Webhook(provider, ev.Type, metrics.OutcomeFailed)
		return fmt.Errorf("claim event %s: %w", ev.ID, err)
	}
	if !claimed {
		s.metrics.Webhook(provider, ev.Type, metrics.OutcomeDuplicate)
		log.Info("duplicate webhook delivery skipped")
		return nil
	}

	outcome, err := s.apply(ctx, ev, log)
	if err != nil {
		s.metrics.Webhook(provider, ev.Type, metrics.OutcomeFailed)
		log.Error("webhook processing failed", zap.Error(err))
		if relErr := s.ledger.Release(ctx, provider, ev.ID); relErr != nil {
			log.Error("failed to release webhook event", zap.Error(relErr))
		}
		return err
	}

	s.metrics.Webhook(provider, ev.Type, outcome)
	return nil
}

func (s *PaymentService) apply(ctx context.Context, ev *billing.ProviderEvent, log *zap.Logger) (string, error) {
	switch ev.Type {
	case billing.EventWaitingForCapture:
		if ev.PaymentID == "" {
			log.Warn("capture event without payment id")
			return metrics.OutcomeIgnored, nil
		}
		if err := s.provider.CapturePayment(ctx, ev.PaymentID); err != nil {
			return "", fmt.Errorf("capture payment %s: %w", ev.PaymentID, err)
		}
		log.Info("payment captured", zap.String("payment_id", ev.PaymentID))
		return metrics.OutcomeProcessed, nil

	case billing.EventSucceeded:
		corr, err := billing.ResolveCorrelation(ev.Metadata, ev.Description)
		if err != nil {
			log.Warn("cannot correlate payment to an order", zap.Error(err))
			return metrics.OutcomeIgnored, nil
		}
		log = log.With(zap.String("order_id", corr.OrderID.String()))

		order, transitioned, err := s.orders.MarkPaid(ctx, corr.OrderID)
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn("paid order not found", zap.Error(err))
			return metrics.OutcomeIgnored, nil
		}
		if err != nil {
			return "", fmt.Errorf("mark order %s paid: %w", corr.OrderID, err)
		}
		if !transitioned {
			log.Info("order already paid")
			return metrics.OutcomeDuplicate, nil
		}
		if order.UserID != corr.UserID {
			log.Warn("payment user differs from order owner",
				zap.Uint("payment_user_id", corr.UserID),
				zap.Uint("owner_id", order.UserID))
		}
		log.Info("order paid, premium granted", zap.Uint("user_id", order.UserID))
		return metrics.OutcomeProcessed, nil
	}
	return metrics.OutcomeIgnored, nil
}

func (s *PaymentService) ListAll(ctx context.Context) ([]billing.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *PaymentService) ListForUser(ctx context.Context, userID uint) ([]billing.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) (*billing.Order, error) {
	return s.orders.Delete(ctx, id)
}
