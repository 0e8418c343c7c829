package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFavoriteService is a mock implementation of FavoriteService.
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) GetFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithDish, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FavoriteWithDish), args.Error(1)
}

func (m *MockFavoriteService) Add(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorite, error) {
	args := m.Called(ctx, userID, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID, dishID uuid.UUID) error {
	args := m.Called(ctx, userID, dishID)
	return args.Error(0)
}

func TestFavoriteHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("Lists favorites with their dishes", func(t *testing.T) {
		svc := new(MockFavoriteService)
		favorites := []model.FavoriteWithDish{
			{
				Favorite: model.Favorite{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()},
				Dish:     model.Dish{ID: uuid.New(), Name: "Pad Thai", Price: 1800},
			},
		}
		svc.On("GetFavorites", mock.Anything, userID).Return(favorites, nil)

		h := NewFavoriteHandler(svc, logger)

		req := authedRequest(http.MethodGet, "/api/favorites", nil, userID, "customer")
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []model.FavoriteWithDish
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Pad Thai", resp[0].Dish.Name)
	})

	t.Run("No favorites yields an empty list", func(t *testing.T) {
		svc := new(MockFavoriteService)
		svc.On("GetFavorites", mock.Anything, userID).Return([]model.FavoriteWithDish(nil), nil)

		h := NewFavoriteHandler(svc, logger)

		req := authedRequest(http.MethodGet, "/api/favorites", nil, userID, "customer")
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("Unauthenticated request is rejected", func(t *testing.T) {
		svc := new(MockFavoriteService)
		h := NewFavoriteHandler(svc, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "GetFavorites", mock.Anything, mock.Anything)
	})
}

func TestFavoriteHandler_Add(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	dishID := uuid.New()

	tests := []struct {
		name           string
		mockReturn     *model.Favorite
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Saves the dish",
			mockReturn:     &model.Favorite{ID: uuid.New(), UserID: userID, DishID: dishID},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Unknown dish",
			mockError:      model.ErrDishNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Already favorited",
			mockError:      model.ErrDuplicateFavorite,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockFavoriteService)
			svc.On("Add", mock.Anything, userID, dishID).Return(tt.mockReturn, tt.mockError)

			h := NewFavoriteHandler(svc, logger)

			req := authedRequest(http.MethodPost, "/api/favorites/"+dishID.String(), nil, userID, "customer")
			req.SetPathValue("dishID", dishID.String())
			w := httptest.NewRecorder()

			h.Add(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("Malformed dish ID is rejected", func(t *testing.T) {
		svc := new(MockFavoriteService)
		h := NewFavoriteHandler(svc, logger)

		req := authedRequest(http.MethodPost, "/api/favorites/not-a-uuid", nil, userID, "customer")
		req.SetPathValue("dishID", "not-a-uuid")
		w := httptest.NewRecorder()

		h.Add(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFavoriteHandler_Remove(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	dishID := uuid.New()

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Removes the favorite",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Absent favorite",
			mockError:      model.ErrFavoriteNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockFavoriteService)
			svc.On("Remove", mock.Anything, userID, dishID).Return(tt.mockError)

			h := NewFavoriteHandler(svc, logger)

			req := authedRequest(http.MethodDelete, "/api/favorites/"+dishID.String(), nil, userID, "customer")
			req.SetPathValue("dishID", dishID.String())
			w := httptest.NewRecorder()

			h.Remove(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
