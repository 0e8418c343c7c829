package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a dish a customer wants to find again. A customer holds at
// most one favorite per dish.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	DishID    uuid.UUID `json:"dishId" db:"dish_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FavoriteWithDish pairs a favorite with the dish it points at for listings.
type FavoriteWithDish struct {
	Favorite Favorite `json:"favorite"`
	Dish     Dish     `json:"dish"`
}
