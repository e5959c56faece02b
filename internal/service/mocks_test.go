package service

import (
	"context"
	"net/http"

	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, o *billing.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrders) SetProviderPayment(ctx context.Context, id uuid.UUID, provider, paymentID string) error {
	return m.Called(ctx, id, provider, paymentID).Error(0)
}

func (m *mockOrders) MarkPaid(ctx context.Context, id uuid.UUID) (*billing.Order, bool, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*billing.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *mockOrders) ListAll(ctx context.Context) ([]billing.Order, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]billing.Order)
	return out, args.Error(1)
}

func (m *mockOrders) ListByUser(ctx context.Context, userID uint) ([]billing.Order, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]billing.Order)
	return out, args.Error(1)
}

func (m *mockOrders) Delete(ctx context.Context, id uuid.UUID) (*billing.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*billing.Order)
	return o, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByID(ctx context.Context, id uint) (*users.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*users.User)
	return u, args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) Claim(ctx context.Context, provider, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, provider, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) Release(ctx context.Context, provider, eventID string) error {
	return m.Called(ctx, provider, eventID).Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Name() string { return "test" }

func (m *mockProvider) CreatePayment(ctx context.Context, req billing.PaymentRequest) (*billing.RemotePayment, error) {
	args := m.Called(ctx, req)
	rp, _ := args.Get(0).(*billing.RemotePayment)
	return rp, args.Error(1)
}

func (m *mockProvider) CapturePayment(ctx context.Context, paymentID string) error {
	return m.Called(ctx, paymentID).Error(0)
}

func (m *mockProvider) ParseWebhook(payload []byte, headers http.Header) (*billing.ProviderEvent, error) {
	args := m.Called(payload, headers)
	ev, _ := args.Get(0).(*billing.ProviderEvent)
	return ev, args.Error(1)
}
