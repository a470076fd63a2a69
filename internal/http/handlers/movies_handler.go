// Favorite-movie HTTP handlers.
//
// This file exposes the favorites endpoints:
//   - POST /user/update-movie   (replace the favorite field with one title)
//   - POST /user/manage-movies  (add or remove titles from the list)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-facts-backend/internal/services"
)

// Favorites-list actions accepted by ManageMovies.
const (
	actionAdd    = "add"
	actionRemove = "remove"
)

//
// DTOs
//

// UpdateMovieRequest is the JSON payload for replacing the favorite movie.
type UpdateMovieRequest struct {
	// FavoriteMovie is the single title to store; must be non-empty after trimming.
	FavoriteMovie string `json:"favoriteMovie" example:"The Matrix"`
}

// UpdateMovieResponse is the success payload for POST /user/update-movie.
type UpdateMovieResponse struct {
	Message       string `json:"message" example:"Favorite movie updated successfully"`
	FavoriteMovie string `json:"favoriteMovie" example:"The Matrix"`
}

// ManageMoviesRequest is the JSON payload for list mutations.
type ManageMoviesRequest struct {
	// Action selects the mutation: "add" or "remove".
	Action string `json:"action" example:"add"`
	// MovieTitle names the title to remove (remove action only).
	MovieTitle string `json:"movieTitle" example:"Inception"`
	// NewMovies is a comma-separated list of titles to append (add action only).
	NewMovies string `json:"newMovies" example:"Heat, Alien, Arrival"`
}

// ManageMoviesResponse is the success payload for POST /user/manage-movies.
// Movies is the stored comma-joined list, or null when the list is empty.
type ManageMoviesResponse struct {
	Message string  `json:"message" example:"Movies updated successfully"`
	Movies  *string `json:"movies" example:"Heat, Alien"`
}

//
// Handlers
//

// UpdateMovie godoc
// @ID          updateMovie
// @Summary     Replace the favorite movie
// @Description Stores the given title as the user's favorite movie, replacing the whole field.
// @Tags        Favorites
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateMovieRequest  true  "New favorite"
//
// @Success     200  {object}  handlers.UpdateMovieResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing favorite movie"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Store error"
// @Router      /user/update-movie [post]
func (h *Handlers) UpdateMovie(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.FavoriteMovie) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Favorite movie is required")
		return
	}

	stored, err := h.moviesSvc.SetFavorite(c.Request.Context(), user.ID, req.FavoriteMovie)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTitle):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Favorite movie is required")
		default:
			// A missing user row counts as a store error here: sessions are
			// provisioned before handlers run, so it cannot happen in a
			// served request.
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "Internal server error")
		}
		return
	}

	ok(c, http.StatusOK, UpdateMovieResponse{
		Message:       "Favorite movie updated successfully",
		FavoriteMovie: stored,
	})
}

// ManageMovies godoc
// @ID          manageMovies
// @Summary     Add or remove favorite movies
// @Description Mutates the favorite-movie list. "add" appends the comma-separated newMovies (deduplicated against the current list); "remove" filters out exact matches of movieTitle.
// @Tags        Favorites
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ManageMoviesRequest  true  "List mutation"
//
// @Success     200  {object}  handlers.ManageMoviesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid action"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Store error"
// @Router      /user/manage-movies [post]
func (h *Handlers) ManageMovies(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	var req ManageMoviesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	var (
		movies *string
		err    error
	)
	switch req.Action {
	case actionAdd:
		movies, err = h.moviesSvc.Add(c.Request.Context(), user.ID, req.NewMovies)
	case actionRemove:
		movies, err = h.moviesSvc.Remove(c.Request.Context(), user.ID, req.MovieTitle)
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "action must be \"add\" or \"remove\"")
		return
	}
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "Internal server error")
		return
	}

	ok(c, http.StatusOK, ManageMoviesResponse{
		Message: "Movies updated successfully",
		Movies:  movies,
	})
}
