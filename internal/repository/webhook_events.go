package repository

import (
	"context"

	"movie-app/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhookEventRepository is the database-backed processed-event ledger.
type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Claim records the event and reports whether this call was the first to do so.
func (r *WebhookEventRepository) Claim(ctx context.Context, provider, eventID, eventType string) (bool, error) {
	ev := billing.WebhookEvent{Provider: provider, EventID: eventID, EventType: eventType}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ev)
	if res.Error != nil {
		return false, translate(res.Error, "claim webhook event")
	}
	return res.RowsAffected == 1, nil
}

// Release forgets a claim so that a redelivery of a failed event is processed.
func (r *WebhookEventRepository) Release(ctx context.Context, provider, eventID string) error {
	err := r.db.WithContext(ctx).
		Where("provider = ? AND event_id = ?", provider, eventID).
		Delete(&billing.WebhookEvent{}).Error
	return translate(err, "release webhook event")
}
