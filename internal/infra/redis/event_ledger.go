package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultEventTTL = 7 * 24 * time.Hour

// EventLedger remembers processed webhook events in redis. Keys expire after
// ttl, which should exceed the provider's redelivery window.
type EventLedger struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewEventLedger(client *redis.Client, prefix string, ttl time.Duration) *EventLedger {
	return &EventLedger{client: client, prefix: prefix, ttl: ttl}
}

func (l *EventLedger) key(provider, eventID string) string {
	return l.prefix + provider + ":" + eventID
}

func (l *EventLedger) Claim(ctx context.Context, provider, eventID, eventType string) (bool, error) {
	return l.client.SetNX(ctx, l.key(provider, eventID), eventType, l.ttl).Result()
}

func (l *EventLedger) Release(ctx context.Context, provider, eventID string) error {
	return l.client.Del(ctx, l.key(provider, eventID)).Err()
}
