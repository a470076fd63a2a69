// Package services – QuotaService
//
// This file implements the daily generation quota ledger. Usage is counted
// per user per UTC calendar day with a fixed limit; a new day has no record
// yet and therefore starts at zero without any reset job. Internally the day
// boundary is computed with a real time value and only formatted to the
// canonical YYYY-MM-DD string at the storage boundary.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// DailyFactLimit is the fixed number of fact generations allowed per user
// per UTC day.
const DailyFactLimit = 10

// dateLayout is the canonical storage form of a quota day.
const dateLayout = "2006-01-02"

// QuotaStore defines the repository contract required by QuotaService.
type QuotaStore interface {
	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// Count returns the usage count for (userID, date); zero when absent.
	Count(ctx context.Context, db *gorm.DB, userID, date string) (int, error)

	// Increment atomically bumps the count for (userID, date), creating the
	// row with count 1 when absent, and returns the new count.
	Increment(ctx context.Context, db *gorm.DB, userID, date string) (int, error)
}

// QuotaStatus reports a user's consumption for the current UTC day.
type QuotaStatus struct {
	RemainingCalls int `json:"remainingCalls"`
	UsedCalls      int `json:"usedCalls"`
	TotalCalls     int `json:"totalCalls"`
}

// QuotaService tracks per-user, per-day usage against the daily limit.
type QuotaService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the quota repository used by this service.
	Store QuotaStore

	// Limit caps generations per user per UTC day.
	Limit int
	// Now is a seam for tests; defaults to time.Now.
	Now func() time.Time
}

// NewQuotaService constructs a QuotaService with the fixed daily limit.
func NewQuotaService(db *gorm.DB, store QuotaStore) *QuotaService {
	return &QuotaService{
		DB:    db,
		Store: store,
		Limit: DailyFactLimit,
		Now:   time.Now,
	}
}

// today returns the current UTC calendar date in canonical storage form.
// The day boundary deliberately follows UTC, not the user's local timezone.
func (s *QuotaService) today() string {
	return s.Now().UTC().Format(dateLayout)
}

// Used returns the number of generations consumed today by userID.
func (s *QuotaService) Used(ctx context.Context, userID string) (int, error) {
	return s.Store.Count(ctx, s.DB, userID, s.today())
}

// Remaining returns limit − usage(userID, today), clamped at zero.
func (s *QuotaService) Remaining(ctx context.Context, userID string) (int, error) {
	used, err := s.Used(ctx, userID)
	if err != nil {
		return 0, err
	}
	rem := s.Limit - used
	if rem < 0 {
		rem = 0
	}
	return rem, nil
}

// Consume records one generation for userID today and returns the new usage
// count. The upsert-and-increment is a single atomic write; callers perform
// the limit check separately before generating.
func (s *QuotaService) Consume(ctx context.Context, userID string) (int, error) {
	return s.Store.Increment(ctx, s.DB, userID, s.today())
}

// Status resolves the user and reports today's consumption. Returns
// ErrUserNotFound when the user does not exist.
func (s *QuotaService) Status(ctx context.Context, userID string) (*QuotaStatus, error) {
	if _, err := s.Store.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	used, err := s.Used(ctx, userID)
	if err != nil {
		return nil, err
	}
	rem := s.Limit - used
	if rem < 0 {
		rem = 0
	}
	return &QuotaStatus{RemainingCalls: rem, UsedCalls: used, TotalCalls: s.Limit}, nil
}
