package notify

import (
	"context"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderCreatedEvent is broadcast to administrative observers after a
// checkout commits.
type OrderCreatedEvent struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// OrderStatusChangedEvent is delivered to the owning customer after an
// administrative status transition.
type OrderStatusChangedEvent struct {
	OrderID uuid.UUID `json:"orderId"`
	UserID  uuid.UUID `json:"-"`
	Status  string    `json:"status"`
}

// ReviewAddedEvent is emitted after a review commits.
type ReviewAddedEvent struct {
	Review model.Review `json:"review"`
}

// Sink receives domain events. Delivery is best-effort: sinks are invoked
// after the owning transaction commits and a sink failure must never undo
// or fail the request that produced the event.
type Sink interface {
	OrderCreated(ctx context.Context, event OrderCreatedEvent) error
	OrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
	ReviewAdded(ctx context.Context, event ReviewAddedEvent) error
}

// Fanout delivers each event to every registered sink, logging failures and
// swallowing them.
type Fanout struct {
	sinks  []Sink
	logger zerolog.Logger
}

// NewFanout creates a dispatcher over the given sinks.
func NewFanout(logger zerolog.Logger, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: logger.With().Str("component", "notify-fanout").Logger(),
	}
}

// OrderCreated delivers the event to all sinks.
func (f *Fanout) OrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	for _, s := range f.sinks {
		if err := s.OrderCreated(ctx, event); err != nil {
			f.logger.Warn().Err(err).
				Str("order_id", event.Order.ID.String()).
				Msg("order created event delivery failed")
		}
	}
	return nil
}

// OrderStatusChanged delivers the event to all sinks.
func (f *Fanout) OrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error {
	for _, s := range f.sinks {
		if err := s.OrderStatusChanged(ctx, event); err != nil {
			f.logger.Warn().Err(err).
				Str("order_id", event.OrderID.String()).
				Str("status", event.Status).
				Msg("order status event delivery failed")
		}
	}
	return nil
}

// ReviewAdded delivers the event to all sinks.
func (f *Fanout) ReviewAdded(ctx context.Context, event ReviewAddedEvent) error {
	for _, s := range f.sinks {
		if err := s.ReviewAdded(ctx, event); err != nil {
			f.logger.Warn().Err(err).
				Str("review_id", event.Review.ID.String()).
				Msg("review added event delivery failed")
		}
	}
	return nil
}
