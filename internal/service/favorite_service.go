package service

import (
	"context"
	"fmt"
	"time"

	"bistro/internal/model"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// favoriteService implements FavoriteService.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	dishRepo     repository.DishRepository
	logger       zerolog.Logger
	now          func() time.Time
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	dishRepo repository.DishRepository,
	logger zerolog.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		dishRepo:     dishRepo,
		logger:       logger.With().Str("service", "favorite").Logger(),
		now:          time.Now,
	}
}

// GetFavorites retrieves the customer's favorites with their dishes, newest first.
func (s *favoriteService) GetFavorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithDish, error) {
	favorites, err := s.favoriteRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get favorites")
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return favorites, nil
}

// Add saves a dish to the customer's favorites.
func (s *favoriteService) Add(ctx context.Context, userID, dishID uuid.UUID) (*model.Favorite, error) {
	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}

	favorite := &model.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		DishID:    dishID,
		CreatedAt: s.now(),
	}

	added, err := s.favoriteRepo.Add(ctx, favorite)
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	if !added {
		return nil, model.ErrDuplicateFavorite
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("dish_id", dishID.String()).
		Msg("favorite added")

	return favorite, nil
}

// Remove drops a dish from the customer's favorites.
func (s *favoriteService) Remove(ctx context.Context, userID, dishID uuid.UUID) error {
	removed, err := s.favoriteRepo.Remove(ctx, userID, dishID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return model.ErrFavoriteNotFound
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("dish_id", dishID.String()).
		Msg("favorite removed")

	return nil
}
