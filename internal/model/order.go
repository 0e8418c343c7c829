package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. An order starts pending; delivered and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// statusTransitions holds the permitted status moves.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order represents a confirmed customer order. Total is post-discount.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Total     float64   `json:"total" db:"total"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem is a line-item snapshot captured at confirmation time. Dish name
// and unit price are copied so later catalogue changes do not alter history.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	DishID    uuid.UUID `json:"dishId" db:"dish_id"`
	DishName  string    `json:"dishName" db:"dish_name"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CheckoutRequest represents the request payload for confirming an order.
// All pricing is server-derived from the persisted cart; the client only
// chooses whether to present a promo code.
type CheckoutRequest struct {
	PromoCode *string `json:"promoCode,omitempty"`
}

// CheckoutResponse represents the response payload for a confirmed order.
// Discount is authoritative: an invalid code at checkout time downgrades to
// zero discount rather than failing the order.
type CheckoutResponse struct {
	Order    Order       `json:"order"`
	Items    []OrderItem `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Discount float64     `json:"discount"`
}

// UpdateStatusRequest represents the request payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderWithItems pairs an order with its snapshots for listings and events.
type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
