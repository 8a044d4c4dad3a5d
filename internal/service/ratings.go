package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type RatingService struct {
	logger     *slog.Logger
	movieRepo  domain.MovieRepository
	ratingRepo domain.RatingRepository
}

func NewRatingService(
	logger *slog.Logger,
	movieRepo domain.MovieRepository,
	ratingRepo domain.RatingRepository) *RatingService {

	return &RatingService{
		logger:     logger,
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
	}
}

// RateMovie stores the user's rating for the movie. Values outside the allowed
// range fail validation and a missing movie reports false.
func (s *RatingService) RateMovie(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return false, domain.NewValidationError(
			"Rating",
			fmt.Sprintf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating),
		)
	}

	exists, err := s.movieRepo.ExistsById(ctx, movieID)
	if err != nil {
		return false, err
	}

	if !exists {
		return false, nil
	}

	rated, err := s.ratingRepo.RateMovie(ctx, movieID, userID, rating)
	if err != nil {
		return false, err
	}

	if rated {
		s.logger.DebugContext(ctx, "movie rated", "movieId", movieID, "userId", userID, "rating", rating)
	}

	return rated, nil
}

func (s *RatingService) DeleteRating(ctx context.Context, movieID, userID uuid.UUID) (bool, error) {
	return s.ratingRepo.DeleteRating(ctx, movieID, userID)
}

func (s *RatingService) GetAllRatingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MovieRating, error) {
	return s.ratingRepo.GetAllRatingsByUser(ctx, userID)
}
