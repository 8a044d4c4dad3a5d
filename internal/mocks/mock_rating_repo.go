package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockRatingRepo struct {
	domain.RatingRepository
	RateMovieFunc           func(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error)
	GetRatingFunc           func(ctx context.Context, movieID uuid.UUID) (*float64, error)
	GetUserRatingFunc       func(ctx context.Context, movieID, userID uuid.UUID) (*float64, *int, error)
	DeleteRatingFunc        func(ctx context.Context, movieID, userID uuid.UUID) (bool, error)
	GetAllRatingsByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.MovieRating, error)
}

func (m *MockRatingRepo) RateMovie(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error) {
	return m.RateMovieFunc(ctx, movieID, userID, rating)
}

func (m *MockRatingRepo) GetRating(ctx context.Context, movieID uuid.UUID) (*float64, error) {
	return m.GetRatingFunc(ctx, movieID)
}

func (m *MockRatingRepo) GetUserRating(ctx context.Context, movieID, userID uuid.UUID) (*float64, *int, error) {
	return m.GetUserRatingFunc(ctx, movieID, userID)
}

func (m *MockRatingRepo) DeleteRating(ctx context.Context, movieID, userID uuid.UUID) (bool, error) {
	return m.DeleteRatingFunc(ctx, movieID, userID)
}

func (m *MockRatingRepo) GetAllRatingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MovieRating, error) {
	return m.GetAllRatingsByUserFunc(ctx, userID)
}
