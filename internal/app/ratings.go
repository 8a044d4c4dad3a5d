package app

import (
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
)

func (app *Application) RateMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := readMovieId(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.RateMovieRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rated, err := app.ratingService.RateMovie(r.Context(), movieId, app.contextGetUserId(r), req.Rating)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if !rated {
		app.notFoundResponse(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteRating(w http.ResponseWriter, r *http.Request) {
	movieId, err := readMovieId(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	deleted, err := app.ratingService.DeleteRating(r.Context(), movieId, app.contextGetUserId(r))
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

func (app *Application) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := app.ratingService.GetAllRatingsByUser(r.Context(), app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieRatingListResponse{
		Ratings: make([]api.MovieRatingResponse, len(ratings)),
	}

	for i, rating := range ratings {
		resp.Ratings[i] = api.MovieRatingResponse{
			MovieId: rating.MovieID,
			Slug:    rating.Slug,
			Rating:  rating.Rating,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
