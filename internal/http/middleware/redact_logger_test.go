package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestScrub(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"title=Heat", "title=Heat"},
		{"fan@example.com", "[REDACTED:email]"},
		{"123e4567-e89b-12d3-a456-426614174000", "[REDACTED:id]"},
		{"212-555-1212", "[REDACTED:phone]"},
		// A UUID must not be half-eaten by the phone pattern.
		{
			"user 123e4567-e89b-12d3-a456-426614174000 at fan@example.com, call 555-123-4567",
			"user [REDACTED:id] at [REDACTED:email], call [REDACTED:phone]",
		},
	}
	for _, tc := range cases {
		if got := scrub(tc.in); got != tc.want {
			t.Fatalf("scrub(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestRedactingLogger_MasksAndScrubs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := logBuffer(t)

	r := gin.New()
	// Stand-in for RequestID setting the response header.
	r.Use(func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-resp")
		c.Next()
	})
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Session-Hint"}}))
	r.GET("/movie/fact/:title", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	q := "email=fan@example.com&callback=+1-555-123-4567&session=123e4567-e89b-12d3-a456-426614174000"
	req := httptest.NewRequest(http.MethodGet, "/movie/fact/inception?"+q, nil)
	req.Header.Set("Authorization", "Bearer session-jwt")
	req.Header.Set("Cookie", "sid=oauth-state")
	req.Header.Set("X-Session-Hint", "secret-hint")
	req.Header.Set("X-Contact", "reach fan@example.com or 555-123-4567")
	req.Header.Set(requestIDHeader, "rid-req") // response header wins

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) {
		t.Fatalf("expected info line:\n%s", logs)
	}
	if !strings.Contains(logs, `"path":"/movie/fact/:title"`) {
		t.Fatalf("expected route pattern as path label:\n%s", logs)
	}
	if !strings.Contains(logs, `"request_id":"rid-resp"`) {
		t.Fatalf("expected request_id from response header:\n%s", logs)
	}
	for _, marker := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]"} {
		if !strings.Contains(logs, marker) {
			t.Fatalf("expected %s in scrubbed query:\n%s", marker, logs)
		}
	}
	if strings.Contains(logs, "fan@example.com") || strings.Contains(logs, "session-jwt") {
		t.Fatalf("raw PII leaked into logs:\n%s", logs)
	}
	for _, hdr := range []string{`"Authorization":"[REDACTED]"`, `"Cookie":"[REDACTED]"`, `"X-Session-Hint":"[REDACTED]"`} {
		if !strings.Contains(logs, hdr) {
			t.Fatalf("expected masked header %s:\n%s", hdr, logs)
		}
	}
	if !strings.Contains(logs, `"X-Contact":"reach [REDACTED:email] or [REDACTED:phone]"`) {
		t.Fatalf("expected pattern-scrubbed X-Contact header:\n%s", logs)
	}
}

func TestRedactingLogger_LevelsAndRequestIDFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := logBuffer(t)

	r := gin.New()
	// No response request-id header; the logger falls back to the request's.
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/quota", func(c *gin.Context) { c.Status(http.StatusTooManyRequests) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	reqWarn := httptest.NewRequest(http.MethodGet, "/quota", nil)
	reqWarn.Header.Set(requestIDHeader, "rid-warn")
	r.ServeHTTP(httptest.NewRecorder(), reqWarn)

	reqErr := httptest.NewRequest(http.MethodGet, "/boom", nil)
	reqErr.Header.Set(requestIDHeader, "rid-err")
	r.ServeHTTP(httptest.NewRecorder(), reqErr)

	logs := buf.String()
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"request_id":"rid-warn"`) {
		t.Fatalf("missing warn line with request_id fallback:\n%s", logs)
	}
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, `"request_id":"rid-err"`) {
		t.Fatalf("missing error line with request_id fallback:\n%s", logs)
	}
}
