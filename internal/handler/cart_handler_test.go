package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, dishID uuid.UUID, quantity int) error {
	args := m.Called(ctx, userID, dishID, quantity)
	return args.Error(0)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	args := m.Called(ctx, userID, lineID, quantity)
	return args.Error(0)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) error {
	args := m.Called(ctx, userID, lineID)
	return args.Error(0)
}

func TestCartHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("Empty cart yields empty items and zero total", func(t *testing.T) {
		carts := new(MockCartService)
		carts.On("GetCart", mock.Anything, userID).Return(&model.Cart{Lines: []model.PricedLine{}}, nil)

		h := NewCartHandler(carts, logger)

		req := authedRequest(http.MethodGet, "/api/cart", nil, userID, "customer")
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var cart model.Cart
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cart))
		assert.Empty(t, cart.Lines)
		assert.Equal(t, 0.0, cart.Subtotal)
	})

	t.Run("Unauthenticated request is rejected", func(t *testing.T) {
		carts := new(MockCartService)
		h := NewCartHandler(carts, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		carts.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})
}

func TestCartHandler_Add(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	dishID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		wantQuantity   int
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Add with explicit quantity",
			body:           &model.AddToCartRequest{Quantity: 3},
			wantQuantity:   3,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing body defaults to one",
			body:           nil,
			wantQuantity:   1,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Unknown dish",
			body:           &model.AddToCartRequest{Quantity: 1},
			wantQuantity:   1,
			mockError:      model.ErrDishNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Zero quantity",
			body:           &model.AddToCartRequest{Quantity: 0},
			wantQuantity:   0,
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			carts.On("AddItem", mock.Anything, userID, dishID, tt.wantQuantity).Return(tt.mockError)
			carts.On("GetCart", mock.Anything, userID).Return(&model.Cart{Lines: []model.PricedLine{}}, nil)

			h := NewCartHandler(carts, logger)

			req := authedRequest(http.MethodPost, "/api/cart/"+dishID.String(), tt.body, userID, "customer")
			req.SetPathValue("dishID", dishID.String())
			w := httptest.NewRecorder()

			h.Add(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCartHandler_Remove(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Remove own line",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Another customer's line",
			mockError:      model.ErrForbidden,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Unknown line",
			mockError:      model.ErrCartLineNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(MockCartService)
			carts.On("RemoveItem", mock.Anything, userID, itemID).Return(tt.mockError)
			carts.On("GetCart", mock.Anything, userID).Return(&model.Cart{Lines: []model.PricedLine{}}, nil)

			h := NewCartHandler(carts, logger)

			req := authedRequest(http.MethodDelete, "/api/cart/items/"+itemID.String(), nil, userID, "customer")
			req.SetPathValue("itemID", itemID.String())
			w := httptest.NewRecorder()

			h.Remove(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
