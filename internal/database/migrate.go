package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full DDL for the service. All statements are idempotent so
// Migrate can run on every start.
const Schema = `
	CREATE TABLE IF NOT EXISTS dishes (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
		category VARCHAR(100) NOT NULL,
		image_url TEXT,
		description TEXT,
		average_rating DECIMAL(3, 1) NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		dish_id UUID NOT NULL REFERENCES dishes(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, dish_id)
	);

	CREATE TABLE IF NOT EXISTS promo_codes (
		id UUID PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		discount_type VARCHAR(20) NOT NULL CHECK (discount_type IN ('percentage', 'fixed')),
		discount_value DECIMAL(10, 2) NOT NULL CHECK (discount_value >= 0),
		min_order_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		max_uses INTEGER NOT NULL DEFAULT -1,
		current_uses INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		total DECIMAL(10, 2) NOT NULL CHECK (total >= 0),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		dish_id UUID NOT NULL,
		dish_name VARCHAR(255) NOT NULL,
		unit_price DECIMAL(10, 2) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		dish_id UUID NOT NULL REFERENCES dishes(id),
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, dish_id)
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		dish_id UUID NOT NULL REFERENCES dishes(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, dish_id)
	);

	CREATE TABLE IF NOT EXISTS activity_logs (
		id UUID PRIMARY KEY,
		user_id UUID,
		action VARCHAR(50) NOT NULL,
		entity_type VARCHAR(50) NOT NULL,
		entity_id UUID,
		details TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_cart_items_user_id ON cart_items(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_dish_id ON reviews(dish_id);
	CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id);
	CREATE INDEX IF NOT EXISTS idx_activity_logs_user_id ON activity_logs(user_id);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")

	return nil
}
