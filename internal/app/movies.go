package app

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMovieRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := toMovie(uuid.New(), req)

	created, err := app.movieService.Create(r.Context(), movie)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if !created {
		app.serverErrorResponse(w, r, fmt.Errorf("movie %s was not stored", movie.ID))
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/movies/%s", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetMovie looks the movie up by id when the path segment is a UUID and by
// slug otherwise.
func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	var idOrSlug string

	err := bindPathParam(r, "id", &idOrSlug)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	userId := app.contextGetUserId(r)

	var movie *domain.Movie

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		movie, err = app.movieService.GetById(r.Context(), id, &userId)
	} else {
		movie, err = app.movieService.GetBySlug(r.Context(), idOrSlug, &userId)
	}
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := readMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)
	options := toMovieOptions(params).WithUser(&userId)

	movies, err := app.movieService.GetAll(r.Context(), options)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	count, err := app.movieService.GetCount(r.Context(), options.Title, options.YearOfRelease)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	metadata := options.PageMetadata(count)

	resp := api.MovieListResponse{
		Movies:   toMovieResponses(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := readMovieId(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.UpdateMovieRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	movie, err := app.movieService.Update(r.Context(), toMovie(id, req), &userId)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := readMovieId(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	deleted, err := app.movieService.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !deleted {
		app.notFoundResponse(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams

	bindings := []struct {
		name string
		dest any
	}{
		{"title", &params.Title},
		{"year", &params.Year},
		{"sortBy", &params.SortBy},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
	}

	for _, b := range bindings {
		err := bindQuery(r, b.name, b.dest)
		if err != nil {
			return params, err
		}
	}

	return params, nil
}

func toMovieOptions(params api.GetMoviesParams) domain.GetAllMoviesOptions {
	options := domain.GetAllMoviesOptions{
		Title:         params.Title,
		YearOfRelease: params.Year,
		Page:          DefaultPage,
		PageSize:      DefaultPageSize,
	}

	if params.Page != nil {
		options.Page = *params.Page
	}
	if params.PageSize != nil {
		options.PageSize = *params.PageSize
	}
	if params.SortBy != nil {
		options.SortField, options.SortOrder = domain.ParseSort(*params.SortBy)
	}

	return options
}

func toMovie(id uuid.UUID, req api.CreateMovieRequest) *domain.Movie {
	return &domain.Movie{
		ID:            id,
		Title:         req.Title,
		YearOfRelease: req.YearOfRelease,
		Genres:        req.Genres,
	}
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:            movie.ID,
		Slug:          movie.Slug,
		Title:         movie.Title,
		YearOfRelease: movie.YearOfRelease,
		Genres:        movie.Genres,
		Rating:        movie.Rating,
		UserRating:    movie.UserRating,
	}
}

func toMovieResponses(movies []*domain.Movie) []api.MovieResponse {
	responses := make([]api.MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = toMovieResponse(movie)
	}

	return responses
}

func toApiMetadata(metadata *domain.PageMetadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
