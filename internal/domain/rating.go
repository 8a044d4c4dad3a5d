package domain

import (
	"context"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type MovieRating struct {
	Rating  int
	MovieID uuid.UUID
	Slug    string
}

type RatingRepository interface {
	RateMovie(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error)
	GetRating(ctx context.Context, movieID uuid.UUID) (*float64, error)
	GetUserRating(ctx context.Context, movieID, userID uuid.UUID) (*float64, *int, error)
	DeleteRating(ctx context.Context, movieID, userID uuid.UUID) (bool, error)
	GetAllRatingsByUser(ctx context.Context, userID uuid.UUID) ([]MovieRating, error)
}
