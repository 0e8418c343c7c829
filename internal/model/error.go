package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidPromoCode    = "INVALID_PROMO_CODE"
	ErrCodePromoExpired        = "PROMO_EXPIRED"
	ErrCodePromoUsageLimit     = "PROMO_USAGE_LIMIT_REACHED"
	ErrCodePromoBelowMinimum   = "PROMO_BELOW_MINIMUM"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeDuplicateReview     = "DUPLICATE_REVIEW"
	ErrCodeDuplicateFavorite   = "DUPLICATE_FAVORITE"
	ErrCodeInvalidRating       = "INVALID_RATING"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInvalidTransition   = "INVALID_STATUS_TRANSITION"
	ErrCodeDuplicatePromoCode  = "DUPLICATE_PROMO_CODE"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a user-visible message.
// Storage failures are never wrapped in a DomainError; they propagate as
// ordinary errors and surface as a generic persistence failure.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrPromoBelowMinimum builds the below-minimum failure; the message must
// name the required minimum.
func ErrPromoBelowMinimum(minimum float64) *DomainError {
	return NewDomainError(ErrCodePromoBelowMinimum,
		fmt.Sprintf("The minimum order amount for this code is %.2f", minimum))
}

// Common domain errors
var (
	ErrInvalidPromoCode    = NewDomainError(ErrCodeInvalidPromoCode, "Invalid promo code")
	ErrPromoExpired        = NewDomainError(ErrCodePromoExpired, "This promo code has expired")
	ErrPromoUsageLimit     = NewDomainError(ErrCodePromoUsageLimit, "This promo code has reached its usage limit")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrDuplicateReview     = NewDomainError(ErrCodeDuplicateReview, "You have already reviewed this dish")
	ErrDuplicateFavorite   = NewDomainError(ErrCodeDuplicateFavorite, "This dish is already in your favorites")
	ErrFavoriteNotFound    = NewDomainError(ErrCodeNotFound, "Favorite not found")
	ErrInvalidRating       = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrDishNotFound        = NewDomainError(ErrCodeNotFound, "Dish not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrCartLineNotFound    = NewDomainError(ErrCodeNotFound, "Cart item not found")
	ErrPromoNotFound       = NewDomainError(ErrCodeNotFound, "Promo code not found")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "Access denied")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Invalid order status transition")
	ErrDuplicatePromoCode  = NewDomainError(ErrCodeDuplicatePromoCode, "This promo code already exists")
	ErrConcurrencyConflict = NewDomainError(ErrCodeConcurrencyConflict, "The operation conflicted with another request, please retry")
)
