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

// dishService implements DishService.
type dishService struct {
	dishRepo repository.DishRepository
	logger   zerolog.Logger
}

// NewDishService creates a new dish service.
func NewDishService(dishRepo repository.DishRepository, logger zerolog.Logger) DishService {
	return &dishService{
		dishRepo: dishRepo,
		logger:   logger.With().Str("service", "dish").Logger(),
	}
}

// GetAll retrieves dishes with pagination.
func (s *dishService) GetAll(ctx context.Context, limit, offset int) ([]model.Dish, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	dishes, err := s.dishRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get dishes")
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}

	return dishes, nil
}

// GetByID retrieves a single dish by ID.
func (s *dishService) GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error) {
	dish, err := s.dishRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", id.String()).Msg("failed to get dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}

	return dish, nil
}

// Create adds a dish to the catalogue.
func (s *dishService) Create(ctx context.Context, req *model.DishRequest) (*model.Dish, error) {
	if req == nil || req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "dish name is required")
	}
	if req.Price < 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "dish price cannot be negative")
	}
	if req.Category == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "dish category is required")
	}

	dish := &model.Dish{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.dishRepo.Create(ctx, dish); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create dish")
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	s.logger.Info().
		Str("dish_id", dish.ID.String()).
		Str("name", dish.Name).
		Msg("dish created")

	return dish, nil
}
