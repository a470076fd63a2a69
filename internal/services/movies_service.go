// Package services – MovieListService
//
// This file implements favorite-movie list management. The list is held as a
// single comma-joined string on the user row (NULL when empty), so every
// mutation reads the current list, rewrites it in memory, and persists the
// whole field in one atomic write.
//
// Dedupe semantics are deliberate: titles are trimmed and compared with
// exact, case-sensitive string equality against the list as it grows, so
// duplicates inside one add call collapse naturally (the first append makes
// the second a member).
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// listSeparator joins titles when the list is written back.
const listSeparator = ", "

// MovieListStore defines the repository contract required by MovieListService.
type MovieListStore interface {
	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// UpdateFavoriteMovie rewrites the favorite-movie column; nil stores NULL.
	UpdateFavoriteMovie(ctx context.Context, db *gorm.DB, userID string, favoriteMovie *string) error
}

// MovieListService maintains a user's list of favorite titles.
type MovieListService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the user repository used by this service.
	Store MovieListStore
}

// NewMovieListService constructs a MovieListService.
func NewMovieListService(db *gorm.DB, store MovieListStore) *MovieListService {
	return &MovieListService{DB: db, Store: store}
}

// Add splits rawTitles on commas, trims each piece, drops empties, and
// appends each surviving title that is not already in the user's list.
// It returns the persisted comma-joined list, or nil when the list is empty.
func (s *MovieListService) Add(ctx context.Context, userID, rawTitles string) (*string, error) {
	user, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	current := user.Favorites()
	for _, piece := range strings.Split(rawTitles, ",") {
		title := strings.TrimSpace(piece)
		if title == "" {
			continue
		}
		if !contains(current, title) {
			current = append(current, title)
		}
	}
	return s.persist(ctx, userID, current)
}

// Remove filters the user's list to exclude exact matches of the trimmed
// title and persists the result. Removing the last title stores NULL, never
// an empty string.
func (s *MovieListService) Remove(ctx context.Context, userID, title string) (*string, error) {
	user, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	kept := make([]string, 0, len(user.Favorites()))
	for _, m := range user.Favorites() {
		if m != title {
			kept = append(kept, m)
		}
	}
	return s.persist(ctx, userID, kept)
}

// SetFavorite replaces the whole favorite field with the single trimmed
// title. Returns ErrEmptyTitle when the title is blank after trimming.
func (s *MovieListService) SetFavorite(ctx context.Context, userID, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if err := s.Store.UpdateFavoriteMovie(ctx, s.DB, userID, &title); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return title, nil
}

// resolve loads the user, translating a missing row to ErrUserNotFound.
func (s *MovieListService) resolve(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.Store.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// persist writes the list back as a comma-joined string, or NULL when empty,
// and returns the stored value.
func (s *MovieListService) persist(ctx context.Context, userID string, titles []string) (*string, error) {
	var value *string
	if len(titles) > 0 {
		joined := strings.Join(titles, listSeparator)
		value = &joined
	}
	if err := s.Store.UpdateFavoriteMovie(ctx, s.DB, userID, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return value, nil
}

// contains reports whether list holds title under exact string equality.
func contains(list []string, title string) bool {
	for _, m := range list {
		if m == title {
			return true
		}
	}
	return false
}
