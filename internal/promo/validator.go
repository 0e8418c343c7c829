package promo

import (
	"context"
	"fmt"
	"time"

	"bistro/internal/model"
	"bistro/internal/repository"

	"github.com/rs/zerolog"
)

// validator implements Validator against the promo code store.
type validator struct {
	promos repository.PromoRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewValidator creates a new promo code validator.
func NewValidator(promos repository.PromoRepository, logger zerolog.Logger) Validator {
	return &validator{
		promos: promos,
		logger: logger.With().Str("component", "promo-validator").Logger(),
		now:    time.Now,
	}
}

// Validate checks a promo code against a candidate order amount.
func (v *validator) Validate(ctx context.Context, code string, amount float64) (*model.PromoResult, error) {
	promo, err := v.promos.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}

	result, err := Evaluate(promo, amount, v.now())
	if err != nil {
		v.logger.Debug().
			Str("code", code).
			Float64("amount", amount).
			Err(err).
			Msg("promo code rejected")
		return nil, err
	}

	v.logger.Debug().
		Str("code", code).
		Float64("amount", amount).
		Float64("discount", result.CalculatedDiscount).
		Msg("promo code validated")

	return result, nil
}

// Evaluate runs the validation rules against an already-loaded promo row.
// The checkout orchestrator calls this directly with a row it has locked, so
// preview and in-transaction re-validation cannot drift apart.
//
// Rules, in order, short-circuiting at the first failure:
// existence and active flag, expiry, usage ceiling, minimum order amount.
func Evaluate(promo *model.PromoCode, amount float64, now time.Time) (*model.PromoResult, error) {
	if promo == nil || !promo.Active {
		return nil, model.ErrInvalidPromoCode
	}

	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return nil, model.ErrPromoExpired
	}

	if promo.MaxUses != model.UnlimitedUses && promo.CurrentUses >= promo.MaxUses {
		return nil, model.ErrPromoUsageLimit
	}

	if amount < promo.MinOrderAmount {
		return nil, model.ErrPromoBelowMinimum(promo.MinOrderAmount)
	}

	var discount float64
	switch promo.DiscountType {
	case model.DiscountPercentage:
		discount = amount * promo.DiscountValue / 100
	case model.DiscountFixed:
		discount = promo.DiscountValue
	default:
		return nil, model.ErrInvalidPromoCode
	}

	// A discount never exceeds the order amount.
	if discount > amount {
		discount = amount
	}

	return &model.PromoResult{
		Valid:              true,
		Code:               promo.Code,
		DiscountType:       promo.DiscountType,
		DiscountValue:      promo.DiscountValue,
		CalculatedDiscount: discount,
	}, nil
}
