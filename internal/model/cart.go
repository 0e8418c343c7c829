package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLine represents one pending (customer, dish) pairing in a cart.
// At most one line exists per pair; repeated adds increment the quantity.
type CartLine struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	DishID    uuid.UUID `json:"dishId" db:"dish_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PricedLine is a cart line joined to its dish at the current catalogue price.
type PricedLine struct {
	Line      CartLine `json:"line"`
	Dish      Dish     `json:"dish"`
	LineTotal float64  `json:"lineTotal"`
}

// Cart is the aggregated view of a customer's pending lines.
type Cart struct {
	Lines    []PricedLine `json:"items"`
	Subtotal float64      `json:"total"`
}

// AddToCartRequest represents the request payload for adding a dish to the cart.
type AddToCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartLineRequest represents the request payload for changing a line quantity.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}
