package repository

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

type ratingKey struct {
	userID  uuid.UUID
	movieID uuid.UUID
}

type movieRecord struct {
	id            uuid.UUID
	slug          string
	title         string
	yearOfRelease int
	genres        []string
}

// MemoryStore keeps movies and ratings in process memory. It implements both
// domain.MovieRepository and domain.RatingRepository with the same observable
// semantics as the Postgres repositories and is meant for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	movies  map[uuid.UUID]*movieRecord
	ratings map[ratingKey]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies:  make(map[uuid.UUID]*movieRecord),
		ratings: make(map[ratingKey]int),
	}
}

func (s *MemoryStore) Create(ctx context.Context, movie *domain.Movie) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.movies[movie.ID]; exists {
		return false, domain.ErrDuplicateMovieID
	}

	if s.slugTaken(movie.Slug, movie.ID) {
		return false, domain.ErrDuplicateSlug
	}

	s.movies[movie.ID] = newMovieRecord(movie)

	return true, nil
}

func (s *MemoryStore) GetById(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return s.toMovie(record, userID), nil
}

func (s *MemoryStore) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.movies {
		if record.slug == slug {
			return s.toMovie(record, userID), nil
		}
	}

	return nil, domain.ErrRecordNotFound
}

func (s *MemoryStore) GetAll(ctx context.Context, options domain.GetAllMoviesOptions) ([]*domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compare, err := recordComparator(options.SortField, options.SortOrder)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.filter(options.Title, options.YearOfRelease)
	slices.SortFunc(records, compare)

	start := min(options.Offset(), len(records))
	end := min(start+options.Limit(), len(records))

	movies := make([]*domain.Movie, 0, end-start)
	for _, record := range records[start:end] {
		movies = append(movies, s.toMovie(record, options.UserID))
	}

	return movies, nil
}

func (s *MemoryStore) Update(ctx context.Context, movie *domain.Movie) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.movies[movie.ID]; !exists {
		return false, nil
	}

	if s.slugTaken(movie.Slug, movie.ID) {
		return false, domain.ErrDuplicateSlug
	}

	s.movies[movie.ID] = newMovieRecord(movie)

	return true, nil
}

func (s *MemoryStore) DeleteById(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.movies[id]; !exists {
		return false, nil
	}

	delete(s.movies, id)

	for key := range s.ratings {
		if key.movieID == id {
			delete(s.ratings, key)
		}
	}

	return true, nil
}

func (s *MemoryStore) ExistsById(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.movies[id]

	return exists, nil
}

func (s *MemoryStore) GetCount(ctx context.Context, title *string, yearOfRelease *int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filter(title, yearOfRelease)), nil
}

func (s *MemoryStore) RateMovie(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.movies[movieID]; !exists {
		return false, nil
	}

	s.ratings[ratingKey{userID: userID, movieID: movieID}] = rating

	return true, nil
}

func (s *MemoryStore) GetRating(ctx context.Context, movieID uuid.UUID) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.averageRating(movieID), nil
}

func (s *MemoryStore) GetUserRating(ctx context.Context, movieID, userID uuid.UUID) (*float64, *int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.averageRating(movieID), s.userRating(movieID, userID), nil
}

func (s *MemoryStore) DeleteRating(ctx context.Context, movieID, userID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey{userID: userID, movieID: movieID}
	if _, exists := s.ratings[key]; !exists {
		return false, nil
	}

	delete(s.ratings, key)

	return true, nil
}

func (s *MemoryStore) GetAllRatingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MovieRating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]domain.MovieRating, 0)

	for key, rating := range s.ratings {
		if key.userID != userID {
			continue
		}

		record, ok := s.movies[key.movieID]
		if !ok {
			continue
		}

		ratings = append(ratings, domain.MovieRating{
			Rating:  rating,
			MovieID: record.id,
			Slug:    record.slug,
		})
	}

	slices.SortFunc(ratings, func(a, b domain.MovieRating) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	return ratings, nil
}

func (s *MemoryStore) slugTaken(slug string, ownerID uuid.UUID) bool {
	for id, record := range s.movies {
		if record.slug == slug && id != ownerID {
			return true
		}
	}

	return false
}

// filter mirrors the list predicates of the Postgres repository, including the
// exclusion of movies without genres.
func (s *MemoryStore) filter(title *string, yearOfRelease *int) []*movieRecord {
	records := make([]*movieRecord, 0, len(s.movies))

	for _, record := range s.movies {
		if len(record.genres) == 0 {
			continue
		}

		if title != nil && !strings.Contains(strings.ToLower(record.title), strings.ToLower(*title)) {
			continue
		}

		if yearOfRelease != nil && record.yearOfRelease != *yearOfRelease {
			continue
		}

		records = append(records, record)
	}

	return records
}

func (s *MemoryStore) toMovie(record *movieRecord, userID *uuid.UUID) *domain.Movie {
	genres := slices.Clone(record.genres)
	slices.Sort(genres)

	movie := &domain.Movie{
		ID:            record.id,
		Slug:          record.slug,
		Title:         record.title,
		YearOfRelease: record.yearOfRelease,
		Genres:        genres,
		Rating:        s.averageRating(record.id),
	}

	if userID != nil {
		movie.UserRating = s.userRating(record.id, *userID)
	}

	return movie
}

// averageRating rounds half away from zero to one decimal place, the same way
// round(numeric, 1) does in Postgres.
func (s *MemoryStore) averageRating(movieID uuid.UUID) *float64 {
	var sum, count int64

	for key, rating := range s.ratings {
		if key.movieID == movieID {
			sum += int64(rating)
			count++
		}
	}

	if count == 0 {
		return nil
	}

	average, _ := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(count)).
		Round(1).
		Float64()

	return &average
}

func (s *MemoryStore) userRating(movieID, userID uuid.UUID) *int {
	rating, ok := s.ratings[ratingKey{userID: userID, movieID: movieID}]
	if !ok {
		return nil
	}

	return &rating
}

func newMovieRecord(movie *domain.Movie) *movieRecord {
	return &movieRecord{
		id:            movie.ID,
		slug:          movie.Slug,
		title:         movie.Title,
		yearOfRelease: movie.YearOfRelease,
		genres:        slices.Clone(movie.Genres),
	}
}

func recordComparator(field domain.SortField, order domain.SortOrder) (func(a, b *movieRecord) int, error) {
	var byField func(a, b *movieRecord) int

	switch field {
	case domain.SortFieldNone:
		byField = func(a, b *movieRecord) int { return 0 }
	case domain.SortFieldTitle:
		byField = func(a, b *movieRecord) int { return strings.Compare(a.title, b.title) }
	case domain.SortFieldYearOfRelease:
		byField = func(a, b *movieRecord) int { return cmp.Compare(a.yearOfRelease, b.yearOfRelease) }
	default:
		return nil, domain.ErrInvalidSortField
	}

	return func(a, b *movieRecord) int {
		c := byField(a, b)
		if order == domain.Descending {
			c = -c
		}

		if c != 0 {
			return c
		}

		return bytes.Compare(a.id[:], b.id[:])
	}, nil
}
