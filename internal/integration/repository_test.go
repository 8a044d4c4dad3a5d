package integration_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	BaseSuite
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) TestRatingScenario() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, duneMovie())

	movie, err := s.app.Movies.GetBySlug(ctx, "dune", nil)
	s.Require().NoError(err)
	s.Equal([]string{"Drama", "Sci-Fi"}, movie.Genres)
	s.Nil(movie.Rating)
	s.Nil(movie.UserRating)

	insertTestRating(s.T(), s.app, TestDuneId, TestAdminId, 4)
	insertTestRating(s.T(), s.app, TestDuneId, TestEditorId, 5)
	insertTestRating(s.T(), s.app, TestDuneId, TestViewerId, 5)

	movie, err = s.app.Movies.GetById(ctx, TestDuneId, &TestAdminId)
	s.Require().NoError(err)
	s.Require().NotNil(movie.Rating)
	s.Equal(4.7, *movie.Rating)
	s.Require().NotNil(movie.UserRating)
	s.Equal(4, *movie.UserRating)

	// A second rating from the same user replaces the first.
	insertTestRating(s.T(), s.app, TestDuneId, TestAdminId, 2)
	s.Equal(3, countRows(s.T(), s.app.DB, `SELECT COUNT(*) FROM ratings WHERE movie_id = $1`, TestDuneId))

	rating, userRating, err := s.app.Ratings.GetUserRating(ctx, TestDuneId, TestAdminId)
	s.Require().NoError(err)
	s.Equal(4.0, *rating)
	s.Equal(2, *userRating)

	deleted, err := s.app.Ratings.DeleteRating(ctx, TestDuneId, TestAdminId)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.app.Ratings.DeleteRating(ctx, TestDuneId, TestAdminId)
	s.Require().NoError(err)
	s.False(deleted)

	rating, err = s.app.Ratings.GetRating(ctx, TestDuneId)
	s.Require().NoError(err)
	s.Equal(5.0, *rating)
}

func (s *RepositoryTestSuite) TestRateMissingMovie() {
	rated, err := s.app.Ratings.RateMovie(context.Background(), uuid.New(), TestViewerId, 3)
	s.Require().NoError(err)
	s.False(rated)
}

func (s *RepositoryTestSuite) TestUniqueness() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, duneMovie())

	duplicateSlug := duneMovie()
	duplicateSlug.ID = uuid.New()
	duplicateSlug.YearOfRelease = 1984

	_, err := s.app.Movies.Create(ctx, duplicateSlug)
	s.ErrorIs(err, domain.ErrDuplicateSlug)

	duplicateId := arrivalMovie()
	duplicateId.ID = TestDuneId

	_, err = s.app.Movies.Create(ctx, duplicateId)
	s.ErrorIs(err, domain.ErrDuplicateMovieID)

	insertTestMovie(s.T(), s.app, arrivalMovie())

	clash := arrivalMovie()
	clash.Slug = "dune"

	_, err = s.app.Movies.Update(ctx, clash)
	s.ErrorIs(err, domain.ErrDuplicateSlug)

	updated, err := s.app.Movies.Update(ctx, heatMovie())
	s.Require().NoError(err)
	s.False(updated)
}

func (s *RepositoryTestSuite) TestCreateIsAtomic() {
	broken := heatMovie()
	broken.Genres = []string{"Crime", "Thr\x00iller"}

	_, err := s.app.Movies.Create(context.Background(), broken)
	s.Require().Error(err)

	s.Zero(countRows(s.T(), s.app.DB, `SELECT COUNT(*) FROM movies WHERE id = $1`, TestHeatId))
	s.Zero(countRows(s.T(), s.app.DB, `SELECT COUNT(*) FROM movies_genres WHERE movie_id = $1`, TestHeatId))
}

func (s *RepositoryTestSuite) TestUpdateReplacesGenres() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, duneMovie())

	changed := duneMovie()
	changed.Title = "Dune Part One"
	changed.Slug = "dune-part-one"
	changed.Genres = []string{"Adventure"}

	updated, err := s.app.Movies.Update(ctx, changed)
	s.Require().NoError(err)
	s.True(updated)

	movie, err := s.app.Movies.GetById(ctx, TestDuneId, nil)
	s.Require().NoError(err)
	s.Equal("dune-part-one", movie.Slug)
	s.Equal([]string{"Adventure"}, movie.Genres)
}

func (s *RepositoryTestSuite) TestDeleteCascades() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, duneMovie())
	insertTestMovie(s.T(), s.app, arrivalMovie())
	insertTestRating(s.T(), s.app, TestDuneId, TestViewerId, 5)
	insertTestRating(s.T(), s.app, TestArrivalId, TestViewerId, 3)

	deleted, err := s.app.Movies.DeleteById(ctx, TestDuneId)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.app.Movies.DeleteById(ctx, TestDuneId)
	s.Require().NoError(err)
	s.False(deleted)

	s.Zero(countRows(s.T(), s.app.DB, `SELECT COUNT(*) FROM movies_genres WHERE movie_id = $1`, TestDuneId))

	ratings, err := s.app.Ratings.GetAllRatingsByUser(ctx, TestViewerId)
	s.Require().NoError(err)
	s.Equal([]domain.MovieRating{{Rating: 3, MovieID: TestArrivalId, Slug: "arrival"}}, ratings)
}

func (s *RepositoryTestSuite) TestRatingsByUserOrderedBySlug() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, heatMovie())
	insertTestMovie(s.T(), s.app, duneMovie())
	insertTestMovie(s.T(), s.app, arrivalMovie())

	insertTestRating(s.T(), s.app, TestHeatId, TestViewerId, 4)
	insertTestRating(s.T(), s.app, TestDuneId, TestViewerId, 5)
	insertTestRating(s.T(), s.app, TestArrivalId, TestViewerId, 3)

	ratings, err := s.app.Ratings.GetAllRatingsByUser(ctx, TestViewerId)
	s.Require().NoError(err)

	slugs := make([]string, len(ratings))
	for i, rating := range ratings {
		slugs[i] = rating.Slug
	}
	s.Equal([]string{"arrival", "dune", "heat"}, slugs)

	ratings, err = s.app.Ratings.GetAllRatingsByUser(ctx, TestAdminId)
	s.Require().NoError(err)
	s.Empty(ratings)
}

func (s *RepositoryTestSuite) TestListingMatchesCount() {
	ctx := context.Background()
	insertTestMovie(s.T(), s.app, duneMovie())
	insertTestMovie(s.T(), s.app, arrivalMovie())
	insertTestMovie(s.T(), s.app, heatMovie())

	remake := duneMovie()
	remake.ID = uuid.New()
	remake.Slug = "dune-1984"
	remake.YearOfRelease = 1984
	insertTestMovie(s.T(), s.app, remake)

	_, err := s.app.DB.Exec(ctx,
		`INSERT INTO movies (id, slug, title, year_of_release) VALUES ($1, 'untagged', 'Untagged', 2016)`,
		uuid.New())
	s.Require().NoError(err)

	dune := "DUNE"
	wildcard := "%"
	year := 2016

	filters := []struct {
		name  string
		title *string
		year  *int
		want  int
	}{
		{name: "no filter", want: 4},
		{name: "title is case insensitive", title: &dune, want: 2},
		{name: "wildcards are literal", title: &wildcard, want: 0},
		{name: "year skips movies without genres", year: &year, want: 1},
	}

	for _, f := range filters {
		s.Run(f.name, func() {
			count, err := s.app.Movies.GetCount(ctx, f.title, f.year)
			s.Require().NoError(err)
			s.Equal(f.want, count)

			seen := 0
			for page := 1; ; page++ {
				movies, err := s.app.Movies.GetAll(ctx, domain.GetAllMoviesOptions{
					Title:         f.title,
					YearOfRelease: f.year,
					SortField:     domain.SortFieldTitle,
					SortOrder:     domain.Ascending,
					Page:          page,
					PageSize:      1,
				})
				s.Require().NoError(err)

				if len(movies) == 0 {
					break
				}
				seen += len(movies)
			}

			s.Equal(count, seen)
		})
	}
}
