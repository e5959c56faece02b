package billing

import "time"

// WebhookEvent records a provider event that has been claimed for processing,
// so redelivered events can be recognised.
type WebhookEvent struct {
	ID        uint      `gorm:"primaryKey"`
	Provider  string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_webhook_events_provider_event,priority:1"`
	EventID   string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_webhook_events_provider_event,priority:2"`
	EventType string    `gorm:"type:varchar(100);not null;index"`
	CreatedAt time.Time `gorm:"index"`
}
