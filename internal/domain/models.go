// Package domain defines the persistence models for users, cached movie
// facts, and daily generation quotas. These types are mapped with GORM and
// form the core data layer of the movie-facts application.
package domain

import (
	"strings"
	"time"
)

// User represents an authenticated account created on first sign-in by the
// identity layer. The favorite-movie list is stored denormalized as a single
// comma-joined string (NULL when the list is empty), mirroring how the
// identity provider exposes it on the session.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique sign-in identity supplied by the OAuth provider.
//   - Name / AvatarURL: profile fields refreshed from the provider.
//   - FavoriteMovie: comma-joined list of favorite titles, or NULL for none.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	Email         string    `json:"email"          gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Name          string    `json:"name"           gorm:"type:varchar(255)"`
	AvatarURL     string    `json:"avatar_url"     gorm:"type:varchar(512)"`
	FavoriteMovie *string   `json:"favorite_movie" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Favorites returns the favorite-movie list as a slice of trimmed titles.
// A NULL or blank column yields an empty slice.
func (u *User) Favorites() []string {
	if u.FavoriteMovie == nil {
		return nil
	}
	parts := strings.Split(*u.FavoriteMovie, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// MovieFact caches the most recently generated piece of trivia for a
// (user, title) pair. A new generation for the same pair overwrites the row;
// entries are never expired.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID / MovieTitle: composite unique key; titles are stored trimmed
//     and matched case-sensitively.
//   - Fact: the generated trivia text.
type MovieFact struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string    `json:"user_id"     gorm:"type:char(36);not null;uniqueIndex:ux_facts_user_title,priority:1"`
	MovieTitle string    `json:"movie_title" gorm:"type:varchar(255);not null;uniqueIndex:ux_facts_user_title,priority:2"`
	Fact       string    `json:"fact"        gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for MovieFact.
func (MovieFact) TableName() string { return "movie_facts" }

// RateLimit tracks how many facts a user generated on a given UTC calendar
// day. The day is stored as its canonical YYYY-MM-DD string; a new day simply
// has no row yet, so usage defaults to zero without any reset job. Rows are
// incremented in place and never deleted.
type RateLimit struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:ux_rate_user_date,priority:1"`
	Date      string    `json:"date"    gorm:"type:char(10);not null;uniqueIndex:ux_rate_user_date,priority:2"`
	Count     int       `json:"count"   gorm:"not null;default:0;check:count >= 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for RateLimit.
func (RateLimit) TableName() string { return "rate_limits" }
