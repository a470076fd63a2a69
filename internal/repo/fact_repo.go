// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the MovieFact
// cache.
//
// Cache keys are (user_id, movie_title) with trimmed, case-sensitive titles;
// callers are expected to trim before every lookup or write. Entries are
// upserted in place and never expired.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// GetMovieFact fetches the cached fact for (userID, movieTitle).
// If no entry exists, it returns ErrNotFound. On other DB errors, the raw
// error is returned.
func GetMovieFact(ctx context.Context, db *gorm.DB, userID, movieTitle string) (*domain.MovieFact, error) {
	var f domain.MovieFact
	err := db.WithContext(ctx).
		Where("user_id = ? AND movie_title = ?", userID, movieTitle).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpsertMovieFact stores fact for (userID, movieTitle), overwriting any
// existing entry for the same pair in a single atomic write.
func UpsertMovieFact(ctx context.Context, db *gorm.DB, userID, movieTitle, fact string) error {
	row := &domain.MovieFact{
		ID:         uuid.NewString(),
		UserID:     userID,
		MovieTitle: movieTitle,
		Fact:       fact,
		CreatedAt:  time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_title"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"fact":       fact,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(row).Error
}
