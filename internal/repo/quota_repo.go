// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the daily
// RateLimit counters.
//
// Counters are keyed by (user_id, date) where date is the canonical UTC
// YYYY-MM-DD string. Rows accumulate and are never deleted; a date with no
// row simply means zero usage.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// GetRateLimitCount returns the usage count for (userID, date).
// A missing row is not an error: it reports zero usage.
func GetRateLimitCount(ctx context.Context, db *gorm.DB, userID, date string) (int, error) {
	var rl domain.RateLimit
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rl.Count, nil
}

// IncrementRateLimit bumps the usage count for (userID, date) by one in a
// single atomic upsert (create-with-count-1 when absent) and returns the new
// count. The read-back runs after the write; under concurrent increments it
// may observe a slightly higher value, which only shrinks the remaining
// budget reported to the caller.
func IncrementRateLimit(ctx context.Context, db *gorm.DB, userID, date string) (int, error) {
	row := &domain.RateLimit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Count:     1,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(row).Error
	if err != nil {
		return 0, err
	}
	return GetRateLimitCount(ctx, db, userID, date)
}
