package service

import (
	"context"
	"testing"
	"time"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dishID := uuid.New()
	dish := &model.Dish{ID: dishID, Name: "Margherita Pizza", Price: 2500}

	t.Run("Saves the dish to the customer's favorites", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		dishRepo := new(MockDishRepository)
		svc := NewFavoriteService(favoriteRepo, dishRepo, zerolog.Nop())

		dishRepo.On("GetByID", ctx, dishID).Return(dish, nil)
		favoriteRepo.On("Add", ctx, mock.MatchedBy(func(f *model.Favorite) bool {
			return f.UserID == userID && f.DishID == dishID && !f.CreatedAt.IsZero()
		})).Return(true, nil)

		favorite, err := svc.Add(ctx, userID, dishID)

		require.NoError(t, err)
		assert.Equal(t, userID, favorite.UserID)
		assert.Equal(t, dishID, favorite.DishID)
		assert.NotEqual(t, uuid.Nil, favorite.ID)
		favoriteRepo.AssertExpectations(t)
	})

	t.Run("Unknown dish is rejected", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		dishRepo := new(MockDishRepository)
		svc := NewFavoriteService(favoriteRepo, dishRepo, zerolog.Nop())

		dishRepo.On("GetByID", ctx, dishID).Return(nil, nil)

		favorite, err := svc.Add(ctx, userID, dishID)

		assert.Nil(t, favorite)
		assert.ErrorIs(t, err, model.ErrDishNotFound)
		favoriteRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Second add of the same dish is rejected", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		dishRepo := new(MockDishRepository)
		svc := NewFavoriteService(favoriteRepo, dishRepo, zerolog.Nop())

		dishRepo.On("GetByID", ctx, dishID).Return(dish, nil)
		favoriteRepo.On("Add", ctx, mock.AnythingOfType("*model.Favorite")).Return(false, nil)

		favorite, err := svc.Add(ctx, userID, dishID)

		assert.Nil(t, favorite)
		assert.ErrorIs(t, err, model.ErrDuplicateFavorite)
	})
}

func TestFavoriteService_Remove(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dishID := uuid.New()

	t.Run("Removes an existing favorite", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		svc := NewFavoriteService(favoriteRepo, new(MockDishRepository), zerolog.Nop())

		favoriteRepo.On("Remove", ctx, userID, dishID).Return(true, nil)

		err := svc.Remove(ctx, userID, dishID)

		require.NoError(t, err)
		favoriteRepo.AssertExpectations(t)
	})

	t.Run("Absent favorite is rejected", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		svc := NewFavoriteService(favoriteRepo, new(MockDishRepository), zerolog.Nop())

		favoriteRepo.On("Remove", ctx, userID, dishID).Return(false, nil)

		err := svc.Remove(ctx, userID, dishID)

		assert.ErrorIs(t, err, model.ErrFavoriteNotFound)
	})
}

func TestFavoriteService_GetFavorites(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Lists favorites with their dishes", func(t *testing.T) {
		favoriteRepo := new(MockFavoriteRepository)
		svc := NewFavoriteService(favoriteRepo, new(MockDishRepository), zerolog.Nop())

		favorites := []model.FavoriteWithDish{
			{
				Favorite: model.Favorite{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()},
				Dish:     model.Dish{ID: uuid.New(), Name: "Pad Thai", Price: 1800},
			},
		}
		favoriteRepo.On("GetByUser", ctx, userID).Return(favorites, nil)

		result, err := svc.GetFavorites(ctx, userID)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Pad Thai", result[0].Dish.Name)
	})
}
