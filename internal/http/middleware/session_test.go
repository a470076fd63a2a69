package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-movie-facts-backend/internal/domain"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func sessionRouter(enrich IdentityEnricher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(SessionOptions{Secret: []byte(testSecret)}, enrich))
	r.GET("/whoami", func(c *gin.Context) {
		u, ok := UserFrom(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user in context")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email})
	})
	return r
}

func TestSession_ValidToken(t *testing.T) {
	var gotIdent Identity
	r := sessionRouter(func(_ context.Context, ident Identity) (*domain.User, error) {
		gotIdent = ident
		return &domain.User{ID: "u1", Email: ident.Email, Name: ident.Name}, nil
	})

	token := signToken(t, testSecret, jwt.MapClaims{
		"email":   "jane@example.com",
		"name":    "Jane Doe",
		"picture": "https://example.com/a.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotIdent.Email != "jane@example.com" || gotIdent.Name != "Jane Doe" {
		t.Fatalf("enricher received %+v", gotIdent)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["id"] != "u1" {
		t.Fatalf("handler did not see the enriched user: %v", body)
	}
}

func TestSession_MissingToken(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		t.Fatalf("enricher must not run without a token")
		return nil, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["code"] != "unauthorized" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSession_BadSignature(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		t.Fatalf("enricher must not run on a forged token")
		return nil, nil
	})

	token := signToken(t, "wrong-secret", jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		t.Fatalf("enricher must not run on an expired token")
		return nil, nil
	})

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSession_MissingEmailClaim(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		t.Fatalf("enricher must not run without an email claim")
		return nil, nil
	})

	token := signToken(t, testSecret, jwt.MapClaims{
		"name": "Jane Doe",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSession_EnrichmentFailure(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		return nil, errors.New("db unavailable")
	})

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("store failures are 500, not 401; got %d", w.Code)
	}
}

func TestSession_MalformedAuthorizationHeader(t *testing.T) {
	r := sessionRouter(func(_ context.Context, _ Identity) (*domain.User, error) {
		t.Fatalf("enricher must not run")
		return nil, nil
	})

	for _, h := range []string{"Basic abc123", "Bearer", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", h)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", h, w.Code)
		}
	}
}
