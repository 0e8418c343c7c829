package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a customer's rating of a dish. At most one review exists
// per (customer, dish) pair.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	DishID    uuid.UUID `json:"dishId" db:"dish_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest represents the request payload for submitting a review.
type ReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}
