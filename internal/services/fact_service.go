// Package services – FactService
//
// This file implements FactService, the application-level component that
// owns the cache-or-generate flow for movie trivia. It validates input,
// resolves the user, serves cached facts for free, enforces the daily
// generation quota, invokes the text generation provider, and persists the
// quota increment and cache upsert after a successful generation.
//
// Observability: the generation path is OpenTelemetry-instrumented; spans
// include the user identifier and whether the result came from cache.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FactStore defines the repository contract required by FactService.
type FactStore interface {
	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// GetFact fetches the cached fact for (userID, movieTitle).
	GetFact(ctx context.Context, db *gorm.DB, userID, movieTitle string) (*domain.MovieFact, error)

	// UpsertFact stores fact for (userID, movieTitle), overwriting any
	// existing entry for the same pair.
	UpsertFact(ctx context.Context, db *gorm.DB, userID, movieTitle, fact string) error
}

// QuotaLedger is the slice of QuotaService behavior the fact flow needs.
type QuotaLedger interface {
	// Remaining returns today's remaining generation budget, clamped at zero.
	Remaining(ctx context.Context, userID string) (int, error)
	// Consume records one generation and returns the new usage count.
	Consume(ctx context.Context, userID string) (int, error)
}

// Generator produces a short piece of trivia about a movie title.
// Implementations must honor the provided context for cancellation.
type Generator interface {
	FactAboutMovie(ctx context.Context, movieTitle string) (string, error)
}

// FactResult is the outcome of a fact request.
type FactResult struct {
	// Fact is the trivia text, freshly generated or served from cache.
	Fact string
	// Cached reports whether the fact was served without a provider call.
	Cached bool
	// RemainingCalls is today's remaining generation budget after this call.
	RemainingCalls int
}

// FactService orchestrates authorize → cache → quota → generate → persist.
type FactService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the user/fact repository used by this service.
	Store FactStore
	// Quota is the daily generation ledger.
	Quota QuotaLedger
	// Generator is the text generation provider.
	Generator Generator

	// Limit mirrors the quota's daily cap for remaining-budget arithmetic.
	Limit int
}

// NewFactService constructs a FactService bound to the given collaborators.
func NewFactService(db *gorm.DB, store FactStore, quota QuotaLedger, gen Generator) *FactService {
	return &FactService{DB: db, Store: store, Quota: quota, Generator: gen, Limit: DailyFactLimit}
}

// GetFact returns a fact about movieTitle for userID.
//
// When forceNew is false a cached fact for the trimmed title is returned
// immediately without consuming quota. Otherwise the daily quota is checked
// (forcing bypasses the cache, never the quota), the provider is invoked,
// and on success the quota increment and cache upsert are applied. The two
// writes are best-effort after a successful generation: a failure to persist
// either is logged but does not revoke the fact already produced.
func (s *FactService) GetFact(ctx context.Context, userID, movieTitle string, forceNew bool) (*FactResult, error) {
	tr := otel.Tracer("services/FactService")
	ctx, span := tr.Start(ctx, "GetFact",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Bool("fact.force_new", forceNew),
		),
	)
	defer span.End()

	title := strings.TrimSpace(movieTitle)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if _, err := s.Store.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !forceNew {
		cached, err := s.Store.GetFact(ctx, s.DB, userID, title)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			remaining, rerr := s.Quota.Remaining(ctx, userID)
			if rerr != nil {
				return nil, rerr
			}
			span.SetAttributes(attribute.Bool("fact.cached", true))
			return &FactResult{Fact: cached.Fact, Cached: true, RemainingCalls: remaining}, nil
		}
	}

	remaining, err := s.Quota.Remaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, ErrQuotaExceeded
	}

	fact, err := s.Generator.FactAboutMovie(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// Quota and cache writes happen only after provider success. Failures
	// past this point are logged, not returned: the fact is already paid for.
	result := &FactResult{Fact: fact, Cached: false}
	if used, cerr := s.Quota.Consume(ctx, userID); cerr != nil {
		log.Warn().Err(cerr).Str("user_id", userID).
			Msg("quota increment failed after successful generation")
		result.RemainingCalls = remaining - 1
	} else {
		result.RemainingCalls = s.clampRemaining(used)
	}
	if uerr := s.Store.UpsertFact(ctx, s.DB, userID, title, fact); uerr != nil {
		log.Warn().Err(uerr).Str("user_id", userID).
			Msg("fact cache write failed after successful generation")
	}

	span.SetAttributes(attribute.Bool("fact.cached", false))
	return result, nil
}

// RandomFavoriteFact picks a random title from the user's favorites and
// generates a fresh fact about it. It does not consult the cache or the
// daily quota. Returns ErrNoFavoriteMovie when the list is empty.
func (s *FactService) RandomFavoriteFact(ctx context.Context, userID string) (fact, movie string, err error) {
	tr := otel.Tracer("services/FactService")
	ctx, span := tr.Start(ctx, "RandomFavoriteFact",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	user, err := s.Store.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	favorites := user.Favorites()
	if len(favorites) == 0 {
		return "", "", ErrNoFavoriteMovie
	}
	movie = favorites[rand.Intn(len(favorites))]

	fact, err = s.Generator.FactAboutMovie(ctx, movie)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return fact, movie, nil
}

// clampRemaining converts a usage count into the remaining budget, floored
// at zero (usage can exceed the limit under concurrent forced requests).
func (s *FactService) clampRemaining(used int) int {
	rem := s.Limit - used
	if rem < 0 {
		rem = 0
	}
	return rem
}
