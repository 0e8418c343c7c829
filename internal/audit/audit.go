// Package audit records write operations as activity-log rows. It is a
// notification sink, not part of the request transactions it observes, so a
// logging failure can never roll back the operation it describes.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"bistro/internal/notify"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Actions recorded in the activity log.
const (
	ActionOrderCreated  = "ORDER_CREATED"
	ActionStatusChanged = "ORDER_STATUS_CHANGED"
	ActionReviewAdded   = "REVIEW_ADDED"
)

// Recorder implements notify.Sink by appending activity_logs rows.
type Recorder struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRecorder creates an activity-log recorder.
func NewRecorder(pool *pgxpool.Pool, logger zerolog.Logger) *Recorder {
	return &Recorder{
		pool:   pool,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// OrderCreated records a confirmed checkout.
func (r *Recorder) OrderCreated(ctx context.Context, event notify.OrderCreatedEvent) error {
	details := map[string]any{
		"total":      event.Order.Total,
		"item_count": len(event.Items),
	}
	return r.record(ctx, event.Order.UserID, ActionOrderCreated, "ORDER", event.Order.ID, details)
}

// OrderStatusChanged records an administrative status transition.
func (r *Recorder) OrderStatusChanged(ctx context.Context, event notify.OrderStatusChangedEvent) error {
	details := map[string]any{
		"status": event.Status,
	}
	return r.record(ctx, event.UserID, ActionStatusChanged, "ORDER", event.OrderID, details)
}

// ReviewAdded records a review submission.
func (r *Recorder) ReviewAdded(ctx context.Context, event notify.ReviewAddedEvent) error {
	details := map[string]any{
		"dish_id": event.Review.DishID.String(),
		"rating":  event.Review.Rating,
	}
	return r.record(ctx, event.Review.UserID, ActionReviewAdded, "REVIEW", event.Review.ID, details)
}

func (r *Recorder) record(ctx context.Context, userID uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal activity details: %w", err)
	}

	query := `
		INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query, uuid.New(), userID, action, entityType, entityID, string(payload))
	if err != nil {
		r.logger.Error().Err(err).Str("action", action).Msg("failed to record activity")
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}
