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

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const pricedLinesQuery = `
	SELECT c.id, c.user_id, c.dish_id, c.quantity, c.created_at,
	       d.id, d.name, d.price, d.category, d.image_url, d.description,
	       d.average_rating, d.review_count, d.created_at
	FROM cart_items c
	JOIN dishes d ON d.id = c.dish_id
	WHERE c.user_id = $1
	ORDER BY c.created_at
`

func scanPricedLines(rows pgx.Rows) ([]model.PricedLine, error) {
	var lines []model.PricedLine
	for rows.Next() {
		var pl model.PricedLine
		err := rows.Scan(
			&pl.Line.ID,
			&pl.Line.UserID,
			&pl.Line.DishID,
			&pl.Line.Quantity,
			&pl.Line.CreatedAt,
			&pl.Dish.ID,
			&pl.Dish.Name,
			&pl.Dish.Price,
			&pl.Dish.Category,
			&pl.Dish.ImageURL,
			&pl.Dish.Description,
			&pl.Dish.AverageRating,
			&pl.Dish.ReviewCount,
			&pl.Dish.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		pl.LineTotal = pl.Dish.Price * float64(pl.Line.Quantity)
		lines = append(lines, pl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// GetLines retrieves a customer's cart lines joined to current dish prices.
func (r *cartRepository) GetLines(ctx context.Context, userID uuid.UUID) ([]model.PricedLine, error) {
	rows, err := r.pool.Query(ctx, pricedLinesQuery, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	return scanPricedLines(rows)
}

// GetLinesTx is GetLines within an open transaction. The cart rows are
// locked so two concurrent checkouts by the same customer serialise: the
// second sees the cleared cart instead of snapshotting the same lines twice.
func (r *cartRepository) GetLinesTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.PricedLine, error) {
	rows, err := tx.Query(ctx, pricedLinesQuery+` FOR UPDATE OF c`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	return scanPricedLines(rows)
}

// Upsert adds a dish to the cart, incrementing quantity if already present.
// Uniqueness of (user_id, dish_id) is held by the schema; the conflict
// clause turns a repeated add into an increment.
func (r *cartRepository) Upsert(ctx context.Context, userID, dishID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, user_id, dish_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, dish_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, dishID, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("dish_id", dishID.String()).
			Msg("failed to upsert cart line")
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Str("dish_id", dishID.String()).
		Int("quantity", quantity).
		Msg("cart line upserted")

	return nil
}

// GetLineByID retrieves a single cart line.
func (r *cartRepository) GetLineByID(ctx context.Context, id uuid.UUID) (*model.CartLine, error) {
	query := `
		SELECT id, user_id, dish_id, quantity, created_at
		FROM cart_items
		WHERE id = $1
	`

	var line model.CartLine
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&line.ID,
		&line.UserID,
		&line.DishID,
		&line.Quantity,
		&line.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("cart_line_id", id.String()).Msg("cart line not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return &line, nil
}

// UpdateQuantity sets the quantity of an existing line.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to update cart line")
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	return nil
}

// Delete removes a single cart line.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_line_id", id.String()).Msg("failed to delete cart line")
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	return nil
}

// ClearForUser deletes all of a customer's cart lines within tx.
func (r *cartRepository) ClearForUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	tag, err := tx.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Int64("lines", tag.RowsAffected()).
		Msg("cart cleared")

	return nil
}
