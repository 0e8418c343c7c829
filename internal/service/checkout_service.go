package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistro/internal/model"
	"bistro/internal/notify"
	"bistro/internal/promo"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// maxCheckoutAttempts bounds the internal retry on transaction conflicts.
const maxCheckoutAttempts = 3

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	promoRepo repository.PromoRepository
	sink      notify.Sink
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	promoRepo repository.PromoRepository,
	sink notify.Sink,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		promoRepo: promoRepo,
		sink:      sink,
		logger:    logger.With().Str("service", "checkout").Logger(),
		now:       time.Now,
	}
}

// ConfirmOrder converts the customer's cart into a persisted order.
// Conflicting transactions (deadlock, serialization failure) are retried a
// bounded number of times before surfacing as a transient failure.
func (s *checkoutService) ConfirmOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		req = &model.CheckoutRequest{}
	}

	var lastErr error
	for attempt := 1; attempt <= maxCheckoutAttempts; attempt++ {
		resp, err := s.confirmOnce(ctx, userID, req)
		if err == nil || !isRetryableTxError(err) {
			return resp, err
		}

		lastErr = err
		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("user_id", userID.String()).
			Msg("checkout transaction conflict, retrying")
	}

	s.logger.Error().
		Err(lastErr).
		Str("user_id", userID.String()).
		Msg("checkout retries exhausted")

	return nil, model.ErrConcurrencyConflict
}

// confirmOnce runs one atomic checkout attempt. Every write happens inside
// a single transaction; the notification is published only after commit.
func (s *checkoutService) confirmOnce(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (_ *model.CheckoutResponse, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	lines, err := s.cartRepo.GetLinesTx(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	if len(lines) == 0 {
		err = model.ErrEmptyCart
		return nil, err
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.LineTotal
	}

	// Re-validate the promo code against the locked row so two concurrent
	// checkouts cannot both pass an almost-exhausted usage limit. Any
	// validation failure at this point downgrades to no discount rather
	// than aborting the checkout.
	var discount float64
	if req.PromoCode != nil && *req.PromoCode != "" {
		discount, err = s.applyPromo(ctx, tx, *req.PromoCode, subtotal)
		if err != nil {
			return nil, err
		}
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Total:     total,
		Status:    model.StatusPending,
		CreatedAt: s.now(),
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	// Snapshot dish name and price so later catalogue edits cannot rewrite
	// order history.
	items := make([]model.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			DishID:    l.Dish.ID,
			DishName:  l.Dish.Name,
			UnitPrice: l.Dish.Price,
			Quantity:  l.Line.Quantity,
		}
	}

	if err = s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	if err = s.cartRepo.ClearForUser(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Float64("subtotal", subtotal).
		Float64("discount", discount).
		Float64("total", total).
		Int("item_count", len(items)).
		Msg("order confirmed")

	// Best-effort publish after commit; a delivery failure never unwinds a
	// committed order.
	if pubErr := s.sink.OrderCreated(ctx, notify.OrderCreatedEvent{Order: *order, Items: items}); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order created event")
	}

	return &model.CheckoutResponse{
		Order:    *order,
		Items:    items,
		Subtotal: subtotal,
		Discount: discount,
	}, nil
}

// applyPromo evaluates the code against the row locked in this transaction
// and spends one use on success. Validation failures return a zero discount,
// never an error; only storage failures propagate.
func (s *checkoutService) applyPromo(ctx context.Context, tx pgx.Tx, code string, subtotal float64) (float64, error) {
	row, err := s.promoRepo.GetByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm order: %w", err)
	}

	result, verr := promo.Evaluate(row, subtotal, s.now())
	if verr != nil {
		s.logger.Warn().
			Str("code", code).
			Err(verr).
			Msg("promo code rejected at checkout, proceeding without discount")
		return 0, nil
	}

	spent, err := s.promoRepo.IncrementUses(ctx, tx, row.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm order: %w", err)
	}
	if !spent {
		s.logger.Warn().
			Str("code", code).
			Msg("promo usage ceiling hit during checkout, proceeding without discount")
		return 0, nil
	}

	return result.CalculatedDiscount, nil
}

// isRetryableTxError reports whether the error is a transient transaction
// conflict worth retrying (serialization failure or deadlock).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
