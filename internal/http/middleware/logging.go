// Package middleware holds the Gin middleware shared by the movie facts API:
// request correlation, structured logging, PII redaction, Prometheus metrics,
// per-user rate limiting, security headers, and session verification.
//
// This file covers correlation and recovery:
//
//   - RequestID() assigns every request an X-Request-ID (reusing the caller's
//     value when present) and stores it in the Gin context.
//   - Logger() attaches a request-scoped zerolog.Logger and emits one access
//     log line per request, leveled by outcome.
//   - Recovery() turns handler panics into the API's JSON 500 envelope while
//     keeping the correlation ID on the response.
//   - LoggerFrom() hands that request-scoped logger to handlers and services,
//     e.g. lg.Info().Str("movie_title", title).Msg("fact generated").
//
// RequestID must run before the loggers so every line carries the correlation
// ID; Recovery runs after them so panics are logged with request context. The
// raw query string is capped before logging since movie titles arrive in
// request bodies, not queries, and an oversized query is never interesting
// past the first couple of KiB.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key for the correlation ID.
	requestIDKey = "requestID"
	// requestIDHeader propagates the correlation ID to and from clients.
	requestIDHeader = "X-Request-ID"
	// maxLoggedQuery caps the bytes of raw query string written per log line.
	maxLoggedQuery = 2048
)

// RequestID reuses the caller's X-Request-ID when one is sent, otherwise
// generates a UUIDv4. The ID is echoed on the response header and stored in
// the context so downstream middleware and handlers can correlate on it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Logger emits one structured access log line per request and stores a
// request-scoped zerolog.Logger under the "logger" context key for use via
// LoggerFrom.
//
// The line carries request_id, user_id (once the session middleware has
// resolved it), method, route path, client IP, user agent, referer, a capped
// query string, and request/response sizes plus latency. Level follows the
// outcome: error for 5xx or when the Gin context collected errors, warn for
// 4xx, info otherwise.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		uid, _ := c.Get("userID")

		l := log.With().
			Str("request_id", ctxString(rid)).
			Str("user_id", ctxString(uid)).
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("referer", c.Request.Referer()).
			Str("query", clip(c.Request.URL.RawQuery, maxLoggedQuery)).
			// -1 when the client sent no Content-Length.
			Int64("bytes_in", c.Request.ContentLength).
			Logger()

		c.Set("logger", &l)

		c.Next()

		out := l.With().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			out.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= http.StatusInternalServerError:
			out.Error().Msg("request")
		case status >= http.StatusBadRequest:
			out.Warn().Msg("request")
		default:
			out.Info().Msg("request")
		}
	}
}

// Recovery logs handler panics with a stack trace and, when nothing has been
// written yet, responds with the API's JSON 500 envelope carrying the
// correlation ID. When a partial response already went out it can only abort
// with the status code.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", ctxString(rid)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header("Content-Type", "application/json")
					c.Header(requestIDHeader, ctxString(rid))
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"request_id": ctxString(rid),
						"code":       "internal_error",
						"message":    "internal server error",
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger attached by Logger, or a plain
// global logger when none is attached. Never returns nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// routePath returns the registered route pattern (e.g. /api/v1/movie/fact)
// so log and metric labels stay bounded, falling back to the raw URL path
// when no route matched.
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// ctxString narrows a Gin context value to string, empty when absent or of
// another type.
func ctxString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// clip truncates s to max bytes and marks the cut with an ellipsis. A max <= 0
// disables clipping. Byte-wise truncation is fine for log output.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
