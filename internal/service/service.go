package service

import (
	"context"

	"bistro/internal/model"

	"github.com/google/uuid"
)

// DishService defines operations for the dish catalogue.
type DishService interface {
	// GetAll retrieves dishes with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Dish, error)

	// GetByID retrieves a single dish by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error)

	// Create adds a dish to the catalogue.
	Create(ctx context.Context, req *model.DishRequest) (*model.Dish, error)
}

// CartService defines operations on a customer's pending cart.
type CartService interface {
	// GetCart aggregates the customer's lines at current catalogue prices.
	// An empty cart yields an empty line list and a zero subtotal.
	GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// AddItem puts a dish in the cart; a repeated add increments the quantity.
	AddItem(ctx context.Context, userID, dishID uuid.UUID, quantity int) error

	// UpdateQuantity changes the quantity of a line owned by the customer.
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error

	// RemoveItem deletes a line owned by the customer.
	RemoveItem(ctx context.Context, userID, lineID uuid.UUID) error
}

// CheckoutService converts a cart into a persisted order.
type CheckoutService interface {
	// ConfirmOrder atomically creates the order with its item snapshots,
	// spends the promo code if one applies, and clears the cart. An invalid
	// promo code does not abort checkout; the order proceeds at full
	// subtotal and the response reports the discount actually applied.
	ConfirmOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}

// OrderService defines read and administrative operations on orders.
type OrderService interface {
	// GetByUser retrieves the customer's orders, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderWithItems, error)

	// GetByID retrieves one order; callers other than the owner need admin.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderWithItems, error)

	// GetAll retrieves orders across customers for administration, newest
	// first, optionally filtered by status.
	GetAll(ctx context.Context, status string, limit, offset int) ([]model.OrderWithItems, error)

	// UpdateStatus applies an administrative status transition and notifies
	// the owning customer.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
}

// ReviewService defines review submission and reads.
type ReviewService interface {
	// AddReview inserts the review and recomputes the dish rating aggregate
	// in one transaction.
	AddReview(ctx context.Context, userID, dishID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)

	// GetByDish retrieves a dish's reviews, newest first.
	GetByDish(ctx context.Context, dishID uuid.UUID) ([]model.Review, error)
}

// FavoriteService defines a customer's saved-dish list.
type FavoriteService interface {
	// GetFavorites retrieves the customer's favorites with their dishes,
	// newest first.
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithDish, error)

	// Add saves a dish to the customer's favorites. The dish must exist and
	// may be favorited at most once per customer.
	Add(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorite, error)

	// Remove drops a dish from the customer's favorites.
	Remove(ctx context.Context, userID, dishID uuid.UUID) error
}

// PromoService defines promo code administration and the validation preview.
type PromoService interface {
	// Preview validates a code against an amount without spending a use.
	Preview(ctx context.Context, code string, amount float64) (*model.PromoResult, error)

	// GetAll lists every promo code.
	GetAll(ctx context.Context) ([]model.PromoCode, error)

	// Create adds a promo code.
	Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error)

	// Delete removes a promo code.
	Delete(ctx context.Context, id uuid.UUID) error
}
