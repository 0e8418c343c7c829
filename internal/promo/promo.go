package promo

import (
	"context"

	"bistro/internal/model"
)

// Validator defines the interface for promo code validation.
// Validation is a pure read: it never spends a use. Incrementing the usage
// counter is exclusively the checkout's responsibility, so a customer can
// preview a discount any number of times without exhausting a limited code.
type Validator interface {
	// Validate checks a promo code against a candidate order amount and
	// returns the clamped discount. Failures are domain errors:
	// invalid/inactive code, expired, usage limit reached, below minimum.
	Validate(ctx context.Context, code string, amount float64) (*model.PromoResult, error)
}
