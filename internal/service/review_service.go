package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"bistro/internal/model"
	"bistro/internal/notify"
	"bistro/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	dishRepo   repository.DishRepository
	sink       notify.Sink
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	dishRepo repository.DishRepository,
	sink notify.Sink,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		dishRepo:   dishRepo,
		sink:       sink,
		logger:     logger.With().Str("service", "review").Logger(),
		now:        time.Now,
	}
}

// AddReview inserts the review and recomputes the dish rating aggregate in
// one transaction. The dish row is locked so concurrent reviews of the same
// dish serialise on the aggregate.
func (s *reviewService) AddReview(ctx context.Context, userID, dishID uuid.UUID, req *model.ReviewRequest) (_ *model.Review, err error) {
	if req == nil || req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	dish, err := s.dishRepo.GetForUpdate(ctx, tx, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	if dish == nil {
		err = model.ErrDishNotFound
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsFor(ctx, tx, userID, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	if exists {
		err = model.ErrDuplicateReview
		return nil, err
	}

	review := &model.Review{
		ID:        uuid.New(),
		UserID:    userID,
		DishID:    dishID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now(),
	}

	if err = s.reviewRepo.Create(ctx, tx, review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	newCount := dish.ReviewCount + 1
	newAverage := RollRating(dish.AverageRating, dish.ReviewCount, req.Rating)

	if err = s.dishRepo.UpdateRating(ctx, tx, dishID, newAverage, newCount); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.logger.Info().
		Str("dish_id", dishID.String()).
		Int("rating", req.Rating).
		Float64("average_rating", newAverage).
		Int("review_count", newCount).
		Msg("review added")

	if pubErr := s.sink.ReviewAdded(ctx, notify.ReviewAddedEvent{Review: *review}); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("review_id", review.ID.String()).Msg("failed to publish review added event")
	}

	return review, nil
}

// GetByDish retrieves a dish's reviews, newest first.
func (s *reviewService) GetByDish(ctx context.Context, dishID uuid.UUID) ([]model.Review, error) {
	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}

	reviews, err := s.reviewRepo.GetByDish(ctx, dishID)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID.String()).Msg("failed to get reviews")
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// RollRating folds one new rating into a running mean, rounded to one
// decimal place: (avg*count + rating) / (count+1).
func RollRating(average float64, count, rating int) float64 {
	next := (average*float64(count) + float64(rating)) / float64(count+1)
	return math.Round(next*10) / 10
}
