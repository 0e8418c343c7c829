package service

import (
	"context"
	"fmt"

	"bistro/internal/model"
	"bistro/internal/notify"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	sink      notify.Sink
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, sink notify.Sink, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		sink:      sink,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// GetByUser retrieves the customer's orders, newest first.
func (s *orderService) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderWithItems, error) {
	orders, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves one order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderWithItems, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderWithItems{Order: *order, Items: items}, nil
}

// GetAll retrieves orders across customers for administration. A non-empty
// status must be one of the known order statuses.
func (s *orderService) GetAll(ctx context.Context, status string, limit, offset int) ([]model.OrderWithItems, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, model.NewDomainError(model.ErrCodeValidation, "unknown order status")
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.GetAll(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("status", status).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus applies an administrative status transition. The update is a
// compare-and-set against the current status so concurrent transitions
// cannot skip states or leave a terminal state.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, model.ErrInvalidTransition
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !model.CanTransition(order.Status, status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", order.Status).
			Str("to", status).
			Msg("status transition rejected")
		return nil, model.ErrInvalidTransition
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !updated {
		// The order moved under us between the read and the update.
		return nil, model.ErrInvalidTransition
	}

	order.Status = status

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", status).
		Msg("order status changed")

	if pubErr := s.sink.OrderStatusChanged(ctx, notify.OrderStatusChangedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  status,
	}); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", id.String()).Msg("failed to publish status changed event")
	}

	return order, nil
}
