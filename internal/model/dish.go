package model

import (
	"time"

	"github.com/google/uuid"
)

// Dish represents a menu item in the catalogue.
type Dish struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Price         float64   `json:"price" db:"price"`
	Category      string    `json:"category" db:"category"`
	ImageURL      *string   `json:"imageUrl,omitempty" db:"image_url"`
	Description   *string   `json:"description,omitempty" db:"description"`
	AverageRating float64   `json:"averageRating" db:"average_rating"`
	ReviewCount   int       `json:"reviewCount" db:"review_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// DishRequest represents the request payload for creating a dish.
type DishRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description *string `json:"description,omitempty"`
}
