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

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// ExistsFor reports whether the customer already reviewed the dish.
func (r *reviewRepository) ExistsFor(ctx context.Context, tx pgx.Tx, userID, dishID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND dish_id = $2)`

	var exists bool
	if err := tx.QueryRow(ctx, query, userID, dishID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("dish_id", dishID.String()).
			Msg("failed to check for existing review")
		return false, fmt.Errorf("failed to check for existing review: %w", err)
	}

	return exists, nil
}

// Create inserts a new review within the provided transaction.
func (r *reviewRepository) Create(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, dish_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.DishID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("dish_id", review.DishID.String()).
			Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Debug().
		Str("review_id", review.ID.String()).
		Str("dish_id", review.DishID.String()).
		Msg("review created successfully")

	return nil
}

// GetByDish retrieves a dish's reviews, newest first.
func (r *reviewRepository) GetByDish(ctx context.Context, dishID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, user_id, dish_id, rating, comment, created_at
		FROM reviews
		WHERE dish_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, dishID)
	if err != nil {
		r.logger.Error().Err(err).Str("dish_id", dishID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.DishID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
