package service

import (
	"context"
	"fmt"

	"bistro/internal/model"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	dishRepo repository.DishRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, dishRepo repository.DishRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		dishRepo: dishRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart aggregates the customer's lines at current catalogue prices.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get cart lines")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return aggregate(lines), nil
}

// aggregate sums priced lines into a cart. The subtotal is a plain sum, so
// it is invariant under line reordering.
func aggregate(lines []model.PricedLine) *model.Cart {
	cart := &model.Cart{Lines: []model.PricedLine{}}
	for _, l := range lines {
		cart.Lines = append(cart.Lines, l)
		cart.Subtotal += l.LineTotal
	}
	return cart
}

// AddItem puts a dish in the cart; a repeated add increments the quantity.
func (s *cartService) AddItem(ctx context.Context, userID, dishID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID.String()).Msg("failed to look up dish")
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	if dish == nil {
		return model.ErrDishNotFound
	}

	if err := s.cartRepo.Upsert(ctx, userID, dishID, quantity); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("dish_id", dishID.String()).
			Msg("failed to upsert cart line")
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("dish_id", dishID.String()).
		Int("quantity", quantity).
		Msg("dish added to cart")

	return nil
}

// UpdateQuantity changes the quantity of a line owned by the customer.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	return nil
}

// RemoveItem deletes a line owned by the customer.
func (s *cartService) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) error {
	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	return nil
}

// ownedLine loads a cart line and enforces that the caller owns it.
func (s *cartService) ownedLine(ctx context.Context, userID, lineID uuid.UUID) (*model.CartLine, error) {
	line, err := s.cartRepo.GetLineByID(ctx, lineID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_line_id", lineID.String()).Msg("failed to look up cart line")
		return nil, fmt.Errorf("failed to look up cart line: %w", err)
	}
	if line == nil {
		return nil, model.ErrCartLineNotFound
	}
	if line.UserID != userID {
		s.logger.Warn().
			Str("cart_line_id", lineID.String()).
			Str("user_id", userID.String()).
			Msg("cart line access denied")
		return nil, model.ErrForbidden
	}

	return line, nil
}
