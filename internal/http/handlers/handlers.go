// Service contracts and handler wiring.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. All service dependencies are
// abstract interfaces so transport concerns stay separate from business logic.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
	"github.com/tbourn/go-movie-facts-backend/internal/http/middleware"
	"github.com/tbourn/go-movie-facts-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// FactService defines the fact retrieval and generation operations consumed
// by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FactService interface {
	// GetFact serves a cached fact or generates a new one, enforcing the
	// daily quota on genuine generations.
	GetFact(ctx context.Context, userID, movieTitle string, forceNew bool) (*services.FactResult, error)
	// RandomFavoriteFact generates a fresh fact about a random favorite.
	RandomFavoriteFact(ctx context.Context, userID string) (fact, movie string, err error)
}

// MovieListService defines favorite-movie list operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MovieListService interface {
	// Add appends new comma-separated titles, deduplicating against the list.
	Add(ctx context.Context, userID, rawTitles string) (*string, error)
	// Remove filters out exact matches of the trimmed title.
	Remove(ctx context.Context, userID, title string) (*string, error)
	// SetFavorite replaces the whole favorite field with one trimmed title.
	SetFavorite(ctx context.Context, userID, title string) (string, error)
}

// QuotaService reports daily fact-generation consumption.
type QuotaService interface {
	// Status resolves the user and reports today's usage and remaining budget.
	Status(ctx context.Context, userID string) (*services.QuotaStatus, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for facts, favorites, and quota status.
type Handlers struct {
	factSvc   FactService
	moviesSvc MovieListService
	quotaSvc  QuotaService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(factSvc FactService, moviesSvc MovieListService, quotaSvc QuotaService) *Handlers {
	return &Handlers{factSvc: factSvc, moviesSvc: moviesSvc, quotaSvc: quotaSvc}
}

// currentUser returns the session-enriched user attached by the auth
// middleware. When absent the request is unauthenticated.
func currentUser(c *gin.Context) (*domain.User, bool) {
	return middleware.UserFrom(c)
}
