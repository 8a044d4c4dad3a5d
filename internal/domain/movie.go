package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type Movie struct {
	ID            uuid.UUID `validate:"required"`
	Slug          string
	Title         string   `validate:"required,notblank"`
	YearOfRelease int      `validate:"notfuture"`
	Genres        []string `validate:"required,min=1"`
	Rating        *float64
	UserRating    *int
}

// Slugify derives the external identifier of a movie from its title.
func Slugify(title string) string {
	return slug.Make(title)
}

// DistinctGenres drops repeated genre labels, keeping the first occurrence of each.
func DistinctGenres(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	distinct := make([]string, 0, len(genres))

	for _, genre := range genres {
		if _, ok := seen[genre]; ok {
			continue
		}

		seen[genre] = struct{}{}
		distinct = append(distinct, genre)
	}

	return distinct
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) (bool, error)
	GetById(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Movie, error)
	GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*Movie, error)
	GetAll(ctx context.Context, options GetAllMoviesOptions) ([]*Movie, error)
	Update(ctx context.Context, movie *Movie) (bool, error)
	DeleteById(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsById(ctx context.Context, id uuid.UUID) (bool, error)
	GetCount(ctx context.Context, title *string, yearOfRelease *int) (int, error)
}
