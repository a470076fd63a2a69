// Package services defines the business logic for fact generation, quota
// bookkeeping, and favorite-movie management. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrEmptyTitle is returned when a movie title is empty after trimming.
	ErrEmptyTitle = errors.New("movie title is empty")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrQuotaExceeded is returned when the daily generation limit has been
	// reached. Forcing a regeneration bypasses the cache, never this limit.
	ErrQuotaExceeded = errors.New("daily fact limit reached")

	// ErrNoFavoriteMovie is returned when a fact is requested for the user's
	// favorites but the favorite list is empty.
	ErrNoFavoriteMovie = errors.New("no favorite movie set")

	// ErrGenerationFailed wraps any text generation provider failure,
	// including a missing provider credential.
	ErrGenerationFailed = errors.New("fact generation failed")
)
