package service

import (
	"context"
	"testing"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Aggregates lines into quantity-weighted subtotal", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLines", ctx, userID).Return(cartFixture(userID), nil)

		cart, err := svc.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.Len(t, cart.Lines, 2)
		assert.Equal(t, 5800.0, cart.Subtotal)
	})

	t.Run("Empty cart has zero subtotal and empty lines", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLines", ctx, userID).Return([]model.PricedLine{}, nil)

		cart, err := svc.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, cart.Lines)
		assert.Empty(t, cart.Lines)
		assert.Equal(t, 0.0, cart.Subtotal)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dishID := uuid.New()

	t.Run("Add existing dish upserts the line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		dishRepo := new(MockDishRepository)
		svc := NewCartService(cartRepo, dishRepo, zerolog.Nop())

		dishRepo.On("GetByID", ctx, dishID).Return(&model.Dish{ID: dishID, Name: "Margherita Pizza", Price: 2500}, nil)
		cartRepo.On("Upsert", ctx, userID, dishID, 2).Return(nil)

		err := svc.AddItem(ctx, userID, dishID, 2)

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Unknown dish is rejected", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		dishRepo := new(MockDishRepository)
		svc := NewCartService(cartRepo, dishRepo, zerolog.Nop())

		dishRepo.On("GetByID", ctx, dishID).Return(nil, nil)

		err := svc.AddItem(ctx, userID, dishID, 1)

		assert.ErrorIs(t, err, model.ErrDishNotFound)
		cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non-positive quantity is rejected", func(t *testing.T) {
		for _, quantity := range []int{0, -3} {
			dishRepo := new(MockDishRepository)
			svc := NewCartService(new(MockCartRepository), dishRepo, zerolog.Nop())

			err := svc.AddItem(ctx, userID, dishID, quantity)

			assert.ErrorIs(t, err, model.ErrInvalidQuantity)
			dishRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		}
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	t.Run("Owner can change quantity", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLineByID", ctx, lineID).Return(&model.CartLine{ID: lineID, UserID: userID, Quantity: 1}, nil)
		cartRepo.On("UpdateQuantity", ctx, lineID, 3).Return(nil)

		err := svc.UpdateQuantity(ctx, userID, lineID, 3)

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Another customer's line is forbidden", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLineByID", ctx, lineID).Return(&model.CartLine{ID: lineID, UserID: uuid.New()}, nil)

		err := svc.UpdateQuantity(ctx, userID, lineID, 3)

		assert.ErrorIs(t, err, model.ErrForbidden)
		cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown line is rejected", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLineByID", ctx, lineID).Return(nil, nil)

		err := svc.UpdateQuantity(ctx, userID, lineID, 3)

		assert.ErrorIs(t, err, model.ErrCartLineNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lineID := uuid.New()

	t.Run("Owner can remove a line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLineByID", ctx, lineID).Return(&model.CartLine{ID: lineID, UserID: userID}, nil)
		cartRepo.On("Delete", ctx, lineID).Return(nil)

		err := svc.RemoveItem(ctx, userID, lineID)

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Another customer's line is forbidden", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := NewCartService(cartRepo, new(MockDishRepository), zerolog.Nop())

		cartRepo.On("GetLineByID", ctx, lineID).Return(&model.CartLine{ID: lineID, UserID: uuid.New()}, nil)

		err := svc.RemoveItem(ctx, userID, lineID)

		assert.ErrorIs(t, err, model.ErrForbidden)
		cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
