package repository

import (
	"context"
	"fmt"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// dishRepository implements the DishRepository interface using PostgreSQL.
type dishRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDishRepository creates a new PostgreSQL-backed dish repository.
func NewDishRepository(pool *pgxpool.Pool, logger zerolog.Logger) DishRepository {
	return &dishRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

const dishColumns = `id, name, price, category, image_url, description, average_rating, review_count, created_at`

func scanDish(row pgx.Row, d *model.Dish) error {
	return row.Scan(
		&d.ID,
		&d.Name,
		&d.Price,
		&d.Category,
		&d.ImageURL,
		&d.Description,
		&d.AverageRating,
		&d.ReviewCount,
		&d.CreatedAt,
	)
}

// GetAll retrieves dishes with pagination support.
func (r *dishRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	var dishes []model.Dish
	for rows.Next() {
		var d model.Dish
		if err := scanDish(rows, &d); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

// GetByID retrieves a single dish by its ID.
func (r *dishRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`

	var d model.Dish
	err := scanDish(r.pool.QueryRow(ctx, query, id), &d)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("dish_id", id.String()).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.String()).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}

	return &d, nil
}

// Create inserts a new dish.
func (r *dishRepository) Create(ctx context.Context, dish *model.Dish) error {
	query := `
		INSERT INTO dishes (id, name, price, category, image_url, description, average_rating, review_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		dish.ID,
		dish.Name,
		dish.Price,
		dish.Category,
		dish.ImageURL,
		dish.Description,
		dish.AverageRating,
		dish.ReviewCount,
		dish.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("dish_id", dish.ID.String()).Msg("failed to create dish")
		return fmt.Errorf("failed to create dish: %w", err)
	}

	r.logger.Debug().Str("dish_id", dish.ID.String()).Msg("dish created successfully")

	return nil
}

// GetForUpdate retrieves a dish within tx, locking its row so concurrent
// review submissions serialise on the rating aggregate.
func (r *dishRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1 FOR UPDATE`

	var d model.Dish
	err := scanDish(tx.QueryRow(ctx, query, id), &d)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("dish_id", id.String()).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.String()).Msg("failed to lock dish row")
		return nil, fmt.Errorf("failed to lock dish row: %w", err)
	}

	return &d, nil
}

// UpdateRating persists a recomputed rating aggregate within tx.
func (r *dishRepository) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, average float64, count int) error {
	query := `
		UPDATE dishes
		SET average_rating = $2, review_count = $3
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, id, average, count)
	if err != nil {
		r.logger.Error().Err(err).Str("dish_id", id.String()).Msg("failed to update dish rating")
		return fmt.Errorf("failed to update dish rating: %w", err)
	}

	r.logger.Debug().
		Str("dish_id", id.String()).
		Float64("average_rating", average).
		Int("review_count", count).
		Msg("dish rating updated")

	return nil
}
