// Movie fact HTTP handlers.
//
// This file exposes the fact endpoints:
//   - POST /movie/fact   (cache-or-generate for a named title)
//   - GET  /movie/fact   (fresh fact about a random favorite)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-facts-backend/internal/services"
)

//
// DTOs
//

// FactRequest is the JSON payload for requesting a movie fact.
type FactRequest struct {
	// MovieTitle names the movie; must be non-empty after trimming.
	MovieTitle string `json:"movieTitle" example:"Inception"`
	// ForceNew bypasses the cache (but never the daily quota).
	ForceNew bool `json:"forceNew" example:"false"`
}

// FactResponse is the success payload for POST /movie/fact.
type FactResponse struct {
	Fact           string `json:"fact" example:"The spinning top was not originally Cobb's totem."`
	Cached         bool   `json:"cached" example:"false"`
	RemainingCalls int    `json:"remainingCalls" example:"7"`
}

// FavoriteFactResponse is the success payload for GET /movie/fact.
type FavoriteFactResponse struct {
	Fact  string `json:"fact" example:"Filming the hallway fight took three weeks."`
	Movie string `json:"movie" example:"Inception"`
}

//
// Handlers
//

// GetMovieFact godoc
// @ID          getMovieFact
// @Summary     Generate or fetch a movie fact
// @Description Returns a fact about the named movie. Serves the cached fact when one exists unless forceNew is set; genuine generations consume one daily quota call.
// @Tags        Facts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.FactRequest  true  "Fact request payload"
//
// @Success     200  {object}  handlers.FactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing movie title"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     429  {object}  handlers.QuotaExceededResponse  "Daily quota exhausted"
// @Failure     500  {object}  handlers.ErrorResponse  "Generation or store error"
// @Router      /movie/fact [post]
func (h *Handlers) GetMovieFact(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	var req FactRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MovieTitle == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Movie title is required")
		return
	}

	res, err := h.factSvc.GetFact(c.Request.Context(), user.ID, req.MovieTitle, req.ForceNew)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTitle):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Movie title is required")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found")
		case errors.Is(err, services.ErrQuotaExceeded):
			failQuota(c)
		case errors.Is(err, services.ErrGenerationFailed):
			fail(c, http.StatusInternalServerError, ErrCodeGenerationFailed, "Failed to generate movie fact")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Failed to generate movie fact")
		}
		return
	}

	ok(c, http.StatusOK, FactResponse{
		Fact:           res.Fact,
		Cached:         res.Cached,
		RemainingCalls: res.RemainingCalls,
	})
}

// GetFavoriteFact godoc
// @ID          getFavoriteFact
// @Summary     Fact about a random favorite movie
// @Description Picks a random title from the user's favorites and generates a fresh fact about it. Does not consult the cache or the daily quota.
// @Tags        Facts
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.FavoriteFactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "No favorite movie set"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Generation error (including missing provider credential)"
// @Router      /movie/fact [get]
func (h *Handlers) GetFavoriteFact(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	fact, movie, err := h.factSvc.RandomFavoriteFact(c.Request.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFavoriteMovie):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "No favorite movie set")
		case errors.Is(err, services.ErrGenerationFailed):
			fail(c, http.StatusInternalServerError, ErrCodeGenerationFailed, "Failed to generate movie fact")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "Failed to generate movie fact")
		}
		return
	}

	ok(c, http.StatusOK, FavoriteFactResponse{Fact: fact, Movie: movie})
}
