// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements session authentication. The OAuth dance itself
// happens in an external identity layer; what arrives here is a bearer
// session token (HS256 JWT, shared secret) carrying the signed-in email and
// profile claims. The middleware verifies the token and then runs an
// explicit enrichment step that swaps the token claims for the stored user
// profile, provisioning the account on first sign-in.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

// Context keys used to expose the authenticated identity downstream.
const (
	ctxKeyUserID = "userID"
	ctxKeyUser   = "user"
)

// Identity is the verified claim set extracted from a session token.
type Identity struct {
	// Email is the sign-in address; always present on a valid session.
	Email string
	// Name and AvatarURL are profile claims used when provisioning a new
	// account; they may be empty.
	Name      string
	AvatarURL string
}

// IdentityEnricher resolves a verified Identity to the stored user profile,
// creating the account on first sign-in. Implementations live next to the
// persistence layer; the middleware stays transport-only.
type IdentityEnricher func(ctx context.Context, ident Identity) (*domain.User, error)

// SessionOptions configures session token verification.
type SessionOptions struct {
	// Secret is the HS256 signing key shared with the identity layer.
	Secret []byte
}

// Session returns a Gin middleware that authenticates requests.
//
// Behavior:
//   - Reads the bearer token from the Authorization header.
//   - Verifies the HS256 signature and standard time claims.
//   - Requires an email claim; name/picture claims are optional.
//   - Calls enrich to load (or provision) the stored user, then stores the
//     user and its ID in the Gin context for handlers.
//   - Any failure aborts with a 401 JSON envelope; enrichment store errors
//     abort with 500.
func Session(opts SessionOptions, enrich IdentityEnricher) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			unauthorized(c, "missing session token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return opts.Secret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid session token")
			return
		}

		ident := Identity{
			Email:     claimString(claims, "email"),
			Name:      claimString(claims, "name"),
			AvatarURL: claimString(claims, "picture"),
		}
		if ident.Email == "" {
			unauthorized(c, "session token has no email")
			return
		}

		user, err := enrich(c.Request.Context(), ident)
		if err != nil {
			lg := LoggerFrom(c)
			lg.Error().Err(err).Msg("session enrichment failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "internal_error",
				"message":    "internal server error",
			})
			return
		}

		c.Set(ctxKeyUserID, user.ID)
		c.Set(ctxKeyUser, user)
		c.Next()
	}
}

// UserFrom returns the enriched user stored by Session, if any.
func UserFrom(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// claimString reads a string claim, returning "" for absent or non-string.
func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// unauthorized aborts with the standard 401 envelope.
func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
