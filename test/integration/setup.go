package integration

import (
	"context"
	"testing"
	"time"

	"bistro/internal/database"
	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB truncates every application table between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		TRUNCATE activity_logs, favorites, reviews, order_items, orders, cart_items, promo_codes, dishes CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to clean up database: %v", err)
	}
}

// SeedDish inserts one dish and returns its ID.
func SeedDish(t *testing.T, pool *pgxpool.Pool, name string, price float64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO dishes (id, name, price, category, average_rating, review_count, created_at)
		VALUES ($1, $2, $3, 'mains', 0, 0, NOW())
	`, id, name, price)
	if err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}

	return id
}

// SeedCartLine inserts a cart line for a customer.
func SeedCartLine(t *testing.T, pool *pgxpool.Pool, userID, dishID uuid.UUID, quantity int) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO cart_items (id, user_id, dish_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, id, userID, dishID, quantity)
	if err != nil {
		t.Fatalf("failed to seed cart line: %v", err)
	}

	return id
}

// SeedPromoCode inserts a promo code and returns it.
func SeedPromoCode(t *testing.T, pool *pgxpool.Pool, code, discountType string, value, minAmount float64, maxUses int) *model.PromoCode {
	t.Helper()

	ctx := context.Background()
	promoCode := &model.PromoCode{
		ID:             uuid.New(),
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  value,
		MinOrderAmount: minAmount,
		MaxUses:        maxUses,
		Active:         true,
	}
	expires := time.Now().Add(24 * time.Hour)
	promoCode.ExpiresAt = &expires

	_, err := pool.Exec(ctx, `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, TRUE, $7, NOW())
	`, promoCode.ID, promoCode.Code, promoCode.DiscountType, promoCode.DiscountValue,
		promoCode.MinOrderAmount, promoCode.MaxUses, promoCode.ExpiresAt)
	if err != nil {
		t.Fatalf("failed to seed promo code: %v", err)
	}

	return promoCode
}
