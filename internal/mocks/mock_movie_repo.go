package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc     func(ctx context.Context, movie *domain.Movie) (bool, error)
	GetByIdFunc    func(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Movie, error)
	GetBySlugFunc  func(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error)
	GetAllFunc     func(ctx context.Context, options domain.GetAllMoviesOptions) ([]*domain.Movie, error)
	UpdateFunc     func(ctx context.Context, movie *domain.Movie) (bool, error)
	DeleteByIdFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByIdFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	GetCountFunc   func(ctx context.Context, title *string, yearOfRelease *int) (int, error)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) (bool, error) {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id, userID)
}

// GetBySlug reports no owner when GetBySlugFunc is unset, so tests that do not
// care about slug collisions can leave it out.
func (m *MockMovieRepo) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error) {
	if m.GetBySlugFunc == nil {
		return nil, domain.ErrRecordNotFound
	}

	return m.GetBySlugFunc(ctx, slug, userID)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, options domain.GetAllMoviesOptions) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx, options)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) (bool, error) {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) DeleteById(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.DeleteByIdFunc(ctx, id)
}

func (m *MockMovieRepo) ExistsById(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ExistsByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetCount(ctx context.Context, title *string, yearOfRelease *int) (int, error) {
	return m.GetCountFunc(ctx, title, yearOfRelease)
}
