// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetUser fetches a single user by primary key. If the record does not
// exist, it returns ErrNotFound. On other DB errors, the raw error is
// returned.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a single user by their sign-in email.
// Returns ErrNotFound when no account exists for that address.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new User row for a first-time sign-in. The user ID is
// a randomly generated UUID (string), and CreatedAt is set to UTC.
func CreateUser(ctx context.Context, db *gorm.DB, email, name, avatarURL string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureUser loads the account for email, creating it with the supplied
// profile fields when this is the first sign-in. This is the persistence
// half of the identity layer's "enrich session with stored profile" step.
func EnsureUser(ctx context.Context, db *gorm.DB, email, name, avatarURL string) (*domain.User, error) {
	u, err := GetUserByEmail(ctx, db, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return CreateUser(ctx, db, email, name, avatarURL)
}

// UpdateFavoriteMovie rewrites the user's favorite-movie column in a single
// atomic write. Pass nil to store NULL (the explicit "no favorite" marker).
// If no rows are affected (user missing), it returns ErrNotFound.
func UpdateFavoriteMovie(ctx context.Context, db *gorm.DB, userID string, favoriteMovie *string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("favorite_movie", favoriteMovie)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
