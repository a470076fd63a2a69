// Quota and profile HTTP handlers.
//
// This file exposes read-only account endpoints:
//   - GET /user/rate-limit-status  (today's fact-generation consumption)
//   - GET /me                      (session-enriched profile)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-facts-backend/internal/services"
)

// ProfileResponse is the success payload for GET /me.
type ProfileResponse struct {
	ID            string  `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Email         string  `json:"email" example:"jane@example.com"`
	Name          string  `json:"name" example:"Jane Doe"`
	AvatarURL     string  `json:"avatar_url" example:"https://example.com/a.png"`
	FavoriteMovie *string `json:"favorite_movie" example:"Heat, Alien"`
}

// RateLimitStatus godoc
// @ID          rateLimitStatus
// @Summary     Daily fact quota status
// @Description Reports how many generation calls the user has consumed today (UTC) and how many remain.
// @Tags        Quota
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  services.QuotaStatus
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Store error"
// @Router      /user/rate-limit-status [get]
func (h *Handlers) RateLimitStatus(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	status, err := h.quotaSvc.Status(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
		return
	}

	ok(c, http.StatusOK, status)
}

// Me godoc
// @ID          me
// @Summary     Current user profile
// @Description Returns the session-enriched profile of the authenticated user.
// @Tags        Profile
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	user, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}

	ok(c, http.StatusOK, ProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AvatarURL:     user.AvatarURL,
		FavoriteMovie: user.FavoriteMovie,
	})
}
