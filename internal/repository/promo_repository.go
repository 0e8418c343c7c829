package repository

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// promoRepository implements the PromoRepository interface using PostgreSQL.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo code repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

const promoColumns = `id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, active, expires_at, created_at`

func scanPromo(row pgx.Row, p *model.PromoCode) error {
	return row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinOrderAmount,
		&p.MaxUses,
		&p.CurrentUses,
		&p.Active,
		&p.ExpiresAt,
		&p.CreatedAt,
	)
}

// GetByCode retrieves a promo code by exact code match.
func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`

	var p model.PromoCode
	err := scanPromo(r.pool.QueryRow(ctx, query, code), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return &p, nil
}

// GetByCodeForUpdate retrieves a promo code within tx, locking its row.
func (r *promoRepository) GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1 FOR UPDATE`

	var p model.PromoCode
	err := scanPromo(tx.QueryRow(ctx, query, code), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to lock promo code row")
		return nil, fmt.Errorf("failed to lock promo code row: %w", err)
	}

	return &p, nil
}

// IncrementUses spends one use of the code within tx. The WHERE clause
// re-checks the usage ceiling so the counter can never pass max_uses even
// if a caller skipped the row lock.
func (r *promoRepository) IncrementUses(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1
		WHERE id = $1 AND (max_uses = -1 OR current_uses < max_uses)
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to increment promo uses")
		return false, fmt.Errorf("failed to increment promo uses: %w", err)
	}

	spent := tag.RowsAffected() == 1
	if !spent {
		r.logger.Warn().Str("promo_id", id.String()).Msg("promo usage ceiling reached, increment refused")
	}

	return spent, nil
}

// GetAll retrieves every promo code, newest first.
func (r *promoRepository) GetAll(ctx context.Context) ([]model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promo codes")
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	var promos []model.PromoCode
	for rows.Next() {
		var p model.PromoCode
		if err := scanPromo(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promo code row")
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promo code rows")
		return nil, fmt.Errorf("error iterating promo codes: %w", err)
	}

	return promos, nil
}

// Create inserts a new promo code. A unique violation on the code column is
// reported as ErrDuplicatePromoCode.
func (r *promoRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.DiscountType,
		promo.DiscountValue,
		promo.MinOrderAmount,
		promo.MaxUses,
		promo.CurrentUses,
		promo.Active,
		promo.ExpiresAt,
		promo.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn().Str("code", promo.Code).Msg("promo code already exists")
			return model.ErrDuplicatePromoCode
		}
		r.logger.Error().Err(err).Str("code", promo.Code).Msg("failed to create promo code")
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	r.logger.Debug().Str("code", promo.Code).Msg("promo code created successfully")

	return nil
}

// Delete removes a promo code, reporting whether it existed.
func (r *promoRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM promo_codes WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to delete promo code")
		return false, fmt.Errorf("failed to delete promo code: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
