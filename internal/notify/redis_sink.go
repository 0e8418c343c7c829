package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Channel names. NewOrdersChannel is a broadcast for administrative
// observers; per-customer channels carry status pushes to the owner only.
const NewOrdersChannel = "orders:new"

// UserOrdersChannel returns the per-customer channel name.
func UserOrdersChannel(userID string) string {
	return "user:" + userID + ":orders"
}

// RedisSink publishes events over Redis pub/sub for delivery to connected
// clients.
type RedisSink struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

// NewRedisSink creates a Redis-backed notification sink.
func NewRedisSink(rdb *redis.Client, logger zerolog.Logger) *RedisSink {
	return &RedisSink{
		rdb:    rdb,
		logger: logger.With().Str("component", "redis-notify").Logger(),
	}
}

// OrderCreated broadcasts the order with its item snapshots.
func (s *RedisSink) OrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	return s.publish(ctx, NewOrdersChannel, event)
}

// OrderStatusChanged notifies the owning customer.
func (s *RedisSink) OrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error {
	return s.publish(ctx, UserOrdersChannel(event.UserID.String()), event)
}

// ReviewAdded is not pushed to clients; the audit trail records it.
func (s *RedisSink) ReviewAdded(ctx context.Context, event ReviewAddedEvent) error {
	return nil
}

func (s *RedisSink) publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	s.logger.Debug().Str("channel", channel).Msg("event published")

	return nil
}
