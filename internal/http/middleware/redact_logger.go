// RedactingLogger is the access logger the API actually runs with. Every
// authenticated request here carries personal data: the session JWT in the
// Authorization header, and an OAuth email address inside it. The logger
// masks those outright and pattern-scrubs anything email-, phone-, or
// UUID-shaped from query strings and remaining headers before a line is
// written. Request and response bodies (where movie titles and generated
// facts travel) are never logged.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Scrub patterns, compiled once. UUIDs are replaced before phone numbers so
// the loose phone pattern cannot eat the digit runs inside an ID.
var (
	idPattern    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits only, so hex segments survive untouched.
	// Matches forms like "+1 212-555-1212", "212 555 1212", "(212) 555-1212".
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrub replaces identifiers, emails, and phone numbers in s with typed
// [REDACTED:*] markers. The phone pattern is the loosest and runs last.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = idPattern.ReplaceAllString(s, "[REDACTED:id]")
	s = emailPattern.ReplaceAllString(s, "[REDACTED:email]")
	s = phonePattern.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// RedactOptions adds header names (case-insensitive) whose values are fully
// replaced with "[REDACTED]", on top of the built-in set of Authorization,
// Cookie, and Set-Cookie.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger logs method, route path, scrubbed query, status, response
// size, latency, and scrubbed request headers as one structured line per
// request. Level follows status: error for 5xx, warn for 4xx, info otherwise.
// The request_id field prefers the response header set by RequestID and falls
// back to the request header.
//
// Scrubbing narrows what reaches the logs; it does not make logging arbitrary
// input safe. Session tokens and emails belong in the Authorization header,
// never in query strings.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		safeQuery := scrub(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()

		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
