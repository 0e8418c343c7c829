package model

import (
	"time"

	"github.com/google/uuid"
)

// Discount types supported by promo codes.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// UnlimitedUses marks a promo code with no usage ceiling.
const UnlimitedUses = -1

// PromoCode represents a named discount rule with eligibility constraints.
// CurrentUses is mutated only by a successfully confirmed order, never by
// validation previews.
type PromoCode struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Code           string     `json:"code" db:"code"`
	DiscountType   string     `json:"discount_type" db:"discount_type"`
	DiscountValue  float64    `json:"discount_value" db:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount" db:"min_order_amount"`
	MaxUses        int        `json:"max_uses" db:"max_uses"`
	CurrentUses    int        `json:"current_uses" db:"current_uses"`
	Active         bool       `json:"active" db:"active"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// PromoResult is the outcome of a successful promo code validation.
// CalculatedDiscount is already clamped to the candidate order amount.
type PromoResult struct {
	Valid              bool    `json:"valid"`
	Code               string  `json:"code"`
	DiscountType       string  `json:"discount_type"`
	DiscountValue      float64 `json:"discount_value"`
	CalculatedDiscount float64 `json:"calculated_discount"`
}

// PromoValidateRequest represents the request payload for a validation preview.
type PromoValidateRequest struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// PromoCodeRequest represents the request payload for creating a promo code.
type PromoCodeRequest struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxUses        int        `json:"max_uses"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}
