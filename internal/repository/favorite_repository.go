package repository

import (
	"context"
	"fmt"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// favoriteRepository implements the FavoriteRepository interface using PostgreSQL.
type favoriteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(pool *pgxpool.Pool, logger zerolog.Logger) FavoriteRepository {
	return &favoriteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "favorite").Logger(),
	}
}

// GetByUser retrieves a customer's favorites joined to their dishes, newest first.
func (r *favoriteRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithDish, error) {
	query := `
		SELECT f.id, f.user_id, f.dish_id, f.created_at,
		       d.id, d.name, d.price, d.category, d.image_url, d.description,
		       d.average_rating, d.review_count, d.created_at
		FROM favorites f
		JOIN dishes d ON d.id = f.dish_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query favorites")
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []model.FavoriteWithDish
	for rows.Next() {
		var fd model.FavoriteWithDish
		err := rows.Scan(
			&fd.Favorite.ID, &fd.Favorite.UserID, &fd.Favorite.DishID, &fd.Favorite.CreatedAt,
			&fd.Dish.ID, &fd.Dish.Name, &fd.Dish.Price, &fd.Dish.Category, &fd.Dish.ImageURL,
			&fd.Dish.Description, &fd.Dish.AverageRating, &fd.Dish.ReviewCount, &fd.Dish.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan favorite row")
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fd)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating favorite rows")
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}

// Add inserts a favorite; it reports false when the pair already exists.
func (r *favoriteRepository) Add(ctx context.Context, favorite *model.Favorite) (bool, error) {
	query := `
		INSERT INTO favorites (id, user_id, dish_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, dish_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		favorite.ID,
		favorite.UserID,
		favorite.DishID,
		favorite.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", favorite.UserID.String()).
			Str("dish_id", favorite.DishID.String()).
			Msg("failed to add favorite")
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	r.logger.Debug().
		Str("favorite_id", favorite.ID.String()).
		Str("dish_id", favorite.DishID.String()).
		Msg("favorite added successfully")

	return true, nil
}

// Remove deletes a customer's favorite for a dish; it reports whether a row
// was deleted.
func (r *favoriteRepository) Remove(ctx context.Context, userID, dishID uuid.UUID) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND dish_id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, dishID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("dish_id", dishID.String()).
			Msg("failed to remove favorite")
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
