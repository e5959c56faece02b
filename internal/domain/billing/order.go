package billing

import (
	"time"

	"movie-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

// Order lifecycle: PENDING --(payment.succeeded)--> PAYED. PAYED is terminal.
const (
	StatusPending OrderStatus = "PENDING"
	StatusPayed   OrderStatus = "PAYED"
)

type Order struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Status   OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string          `gorm:"type:varchar(3);not null" json:"currency"`

	UserID uint       `gorm:"not null;index" json:"userId"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Provider          string  `gorm:"type:varchar(20)" json:"provider,omitempty"`
	ProviderPaymentID *string `gorm:"column:provider_payment_id;index" json:"providerPaymentId,omitempty"`

	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (o Order) IsPaid() bool {
	return o.Status == StatusPayed
}
