package service

import (
	"context"
	"fmt"
	"time"

	"bistro/internal/model"
	"bistro/internal/promo"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promoService implements PromoService.
type promoService struct {
	promoRepo repository.PromoRepository
	validator promo.Validator
	logger    zerolog.Logger
}

// NewPromoService creates a new promo code service.
func NewPromoService(promoRepo repository.PromoRepository, validator promo.Validator, logger zerolog.Logger) PromoService {
	return &promoService{
		promoRepo: promoRepo,
		validator: validator,
		logger:    logger.With().Str("service", "promo").Logger(),
	}
}

// Preview validates a code against an amount without spending a use.
func (s *promoService) Preview(ctx context.Context, code string, amount float64) (*model.PromoResult, error) {
	if code == "" {
		return nil, model.ErrInvalidPromoCode
	}
	if amount < 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "amount cannot be negative")
	}

	return s.validator.Validate(ctx, code, amount)
}

// GetAll lists every promo code.
func (s *promoService) GetAll(ctx context.Context) ([]model.PromoCode, error) {
	promos, err := s.promoRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list promo codes")
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}

	return promos, nil
}

// Create adds a promo code.
func (s *promoService) Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	if req == nil || req.Code == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "promo code is required")
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return nil, model.NewDomainError(model.ErrCodeValidation,
			fmt.Sprintf("discount type must be %q or %q", model.DiscountPercentage, model.DiscountFixed))
	}
	if req.DiscountValue < 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "discount value cannot be negative")
	}
	if req.MinOrderAmount < 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "minimum order amount cannot be negative")
	}
	// An omitted max_uses means no ceiling.
	maxUses := req.MaxUses
	if maxUses == 0 {
		maxUses = model.UnlimitedUses
	}
	if maxUses < model.UnlimitedUses {
		return nil, model.NewDomainError(model.ErrCodeValidation, "max uses must be positive or -1 for unlimited")
	}

	code := &model.PromoCode{
		ID:             uuid.New(),
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        maxUses,
		CurrentUses:    0,
		Active:         true,
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      time.Now(),
	}

	if err := s.promoRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("code", code.Code).
		Str("discount_type", code.DiscountType).
		Msg("promo code created")

	return code, nil
}

// Delete removes a promo code.
func (s *promoService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.promoRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if !deleted {
		return model.ErrPromoNotFound
	}

	s.logger.Info().Str("promo_id", id.String()).Msg("promo code deleted")

	return nil
}
