package repository

import (
	"context"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DishRepository defines the interface for dish catalogue data access.
type DishRepository interface {
	// GetAll retrieves dishes with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Dish, error)

	// GetByID retrieves a single dish by its ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error)

	// Create inserts a new dish.
	Create(ctx context.Context, dish *model.Dish) error

	// GetForUpdate retrieves a dish within tx, locking its row.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Dish, error)

	// UpdateRating persists a recomputed rating aggregate within tx.
	UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, average float64, count int) error
}

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	// GetLines retrieves a customer's cart lines joined to current dish prices.
	GetLines(ctx context.Context, userID uuid.UUID) ([]model.PricedLine, error)

	// GetLinesTx is GetLines within an open transaction.
	GetLinesTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.PricedLine, error)

	// Upsert adds a dish to the cart, incrementing quantity if already present.
	Upsert(ctx context.Context, userID, dishID uuid.UUID, quantity int) error

	// GetLineByID retrieves a single cart line. Returns (nil, nil) when absent.
	GetLineByID(ctx context.Context, id uuid.UUID) (*model.CartLine, error)

	// UpdateQuantity sets the quantity of an existing line.
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// Delete removes a single cart line.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearForUser deletes all of a customer's cart lines within tx.
	ClearForUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// PromoRepository defines the interface for promo code data access.
type PromoRepository interface {
	// GetByCode retrieves a promo code by exact code match. Returns (nil, nil)
	// when absent.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// GetByCodeForUpdate retrieves a promo code within tx, locking its row so
	// concurrent checkouts serialise on the usage counter.
	GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.PromoCode, error)

	// IncrementUses spends one use of the code within tx. The update is
	// guarded in SQL against the usage ceiling; it reports whether a row
	// was actually updated.
	IncrementUses(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)

	// GetAll retrieves every promo code, newest first.
	GetAll(ctx context.Context) ([]model.PromoCode, error)

	// Create inserts a new promo code.
	Create(ctx context.Context, promo *model.PromoCode) error

	// Delete removes a promo code, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts order item snapshots within the provided transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items. Returns (nil, nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByUser retrieves a customer's orders with items, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderWithItems, error)

	// GetAll retrieves orders across customers, newest first, optionally
	// filtered by status. An empty status means no filter.
	GetAll(ctx context.Context, status string, limit, offset int) ([]model.OrderWithItems, error)

	// UpdateStatus moves an order from one status to another as a single
	// compare-and-set; it reports whether the order was in the expected
	// status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
}

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	// GetByUser retrieves a customer's favorites joined to their dishes,
	// newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithDish, error)

	// Add inserts a favorite; it reports false when the pair already exists.
	Add(ctx context.Context, favorite *model.Favorite) (bool, error)

	// Remove deletes a customer's favorite for a dish; it reports whether a
	// row was deleted.
	Remove(ctx context.Context, userID, dishID uuid.UUID) (bool, error)
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// ExistsFor reports whether the customer already reviewed the dish.
	ExistsFor(ctx context.Context, tx pgx.Tx, userID, dishID uuid.UUID) (bool, error)

	// Create inserts a new review within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// GetByDish retrieves a dish's reviews, newest first.
	GetByDish(ctx context.Context, dishID uuid.UUID) ([]model.Review, error)
}
