package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
)

type MovieService struct {
	logger           *slog.Logger
	movieRepo        domain.MovieRepository
	ratingRepo       domain.RatingRepository
	movieValidator   *appvalidator.MovieValidator
	optionsValidator *appvalidator.OptionsValidator
}

func NewMovieService(
	logger *slog.Logger,
	validate *validator.Validate,
	movieRepo domain.MovieRepository,
	ratingRepo domain.RatingRepository) *MovieService {

	return &MovieService{
		logger:           logger,
		movieRepo:        movieRepo,
		ratingRepo:       ratingRepo,
		movieValidator:   appvalidator.NewMovieValidator(validate, movieRepo),
		optionsValidator: appvalidator.NewOptionsValidator(validate),
	}
}

// Create derives the slug, validates the movie and stores it together with its
// genres. The returned flag is false when the store did not insert the movie.
func (s *MovieService) Create(ctx context.Context, movie *domain.Movie) (bool, error) {
	prepare(movie)

	err := s.movieValidator.Validate(ctx, movie)
	if err != nil {
		return false, err
	}

	created, err := s.movieRepo.Create(ctx, movie)
	if err != nil {
		return false, conflictToValidation(err)
	}

	if created {
		s.logger.InfoContext(ctx, "movie created", "movieId", movie.ID, "slug", movie.Slug)
	}

	return created, nil
}

// Update replaces the movie and returns it with its current rating overlay.
// domain.ErrRecordNotFound is returned when the movie does not exist.
func (s *MovieService) Update(ctx context.Context, movie *domain.Movie, userID *uuid.UUID) (*domain.Movie, error) {
	prepare(movie)

	err := s.movieValidator.Validate(ctx, movie)
	if err != nil {
		return nil, err
	}

	exists, err := s.movieRepo.ExistsById(ctx, movie.ID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	updated, err := s.movieRepo.Update(ctx, movie)
	if err != nil {
		return nil, conflictToValidation(err)
	}

	if !updated {
		return nil, domain.ErrRecordNotFound
	}

	if userID == nil {
		movie.Rating, err = s.ratingRepo.GetRating(ctx, movie.ID)
	} else {
		movie.Rating, movie.UserRating, err = s.ratingRepo.GetUserRating(ctx, movie.ID, *userID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "movie updated", "movieId", movie.ID, "slug", movie.Slug)

	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.movieRepo.DeleteById(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.InfoContext(ctx, "movie deleted", "movieId", id)
	}

	return deleted, nil
}

func (s *MovieService) GetById(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Movie, error) {
	return s.movieRepo.GetById(ctx, id, userID)
}

func (s *MovieService) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error) {
	return s.movieRepo.GetBySlug(ctx, slug, userID)
}

// GetAll validates the listing options and returns the selected page. Sort
// fields match the allow-list case-insensitively.
func (s *MovieService) GetAll(ctx context.Context, options domain.GetAllMoviesOptions) ([]*domain.Movie, error) {
	options.SortField = options.SortField.Normalize()

	err := s.optionsValidator.Validate(&options)
	if err != nil {
		return nil, err
	}

	return s.movieRepo.GetAll(ctx, options)
}

func (s *MovieService) GetCount(ctx context.Context, title *string, yearOfRelease *int) (int, error) {
	return s.movieRepo.GetCount(ctx, title, yearOfRelease)
}

func prepare(movie *domain.Movie) {
	movie.Title = strings.TrimSpace(movie.Title)
	movie.Slug = domain.Slugify(movie.Title)
	movie.Genres = domain.DistinctGenres(movie.Genres)
}

// conflictToValidation turns unique violations caught by the store, after the
// slug rule already passed, into the same failures the validator reports.
func conflictToValidation(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateSlug):
		return domain.NewValidationError("Slug", appvalidator.ErrMovieExists)
	case errors.Is(err, domain.ErrDuplicateMovieID):
		return domain.NewValidationError("ID", appvalidator.ErrMovieExists)
	default:
		return err
	}
}
