package repository

import (
	"context"
	"fmt"
	"time"

	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, now: time.Now}
}

func (r *OrderRepository) Create(ctx context.Context, o *billing.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, "create order")
}

func (r *OrderRepository) SetProviderPayment(ctx context.Context, id uuid.UUID, provider, paymentID string) error {
	res := r.db.WithContext(ctx).Model(&billing.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"provider":            provider,
		"provider_payment_id": paymentID,
	})
	return affected(res, "order")
}

// MarkPaid moves a PENDING order to PAYED and grants the owner premium in a
// single transaction. The order row is locked, so concurrent deliveries for
// the same order serialize. It reports false when the order was already PAYED.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID) (*billing.Order, bool, error) {
	var order billing.Order
	transitioned := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error; err != nil {
			return translate(err, "order")
		}
		if order.IsPaid() {
			return nil
		}

		now := r.now()
		err := tx.Model(&order).Updates(map[string]interface{}{
			"status":  billing.StatusPayed,
			"paid_at": now,
		}).Error
		if err != nil {
			return err
		}

		res := tx.Model(&users.User{}).Where("id = ?", order.UserID).Update("is_has_premium", true)
		if err := affected(res, fmt.Sprintf("owner of order %s", order.ID)); err != nil {
			return err
		}

		order.Status = billing.StatusPayed
		order.PaidAt = &now
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &order, transitioned, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]billing.Order, error) {
	out := []billing.Order{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "list orders")
	}
	return out, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]billing.Order, error) {
	out := []billing.Order{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list orders")
	}
	return out, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) (*billing.Order, error) {
	var order billing.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return nil, translate(err, "order")
	}
	return &order, nil
}
