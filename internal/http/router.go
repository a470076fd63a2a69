// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, session authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-facts-backend/internal/config"
	"github.com/tbourn/go-movie-facts-backend/internal/domain"
	"github.com/tbourn/go-movie-facts-backend/internal/http/handlers"
	"github.com/tbourn/go-movie-facts-backend/internal/http/middleware"
	"github.com/tbourn/go-movie-facts-backend/internal/repo"
	"github.com/tbourn/go-movie-facts-backend/internal/services"
)

// factStoreShim adapts the repository free functions to the services.FactStore
// interface expected by the FactService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type factStoreShim struct{}

// GetUser proxies repo.GetUser.
func (factStoreShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// GetFact proxies repo.GetMovieFact.
func (factStoreShim) GetFact(ctx context.Context, db *gorm.DB, userID, movieTitle string) (*domain.MovieFact, error) {
	return repo.GetMovieFact(ctx, db, userID, movieTitle)
}

// UpsertFact proxies repo.UpsertMovieFact.
func (factStoreShim) UpsertFact(ctx context.Context, db *gorm.DB, userID, movieTitle, fact string) error {
	return repo.UpsertMovieFact(ctx, db, userID, movieTitle, fact)
}

// quotaStoreShim adapts repository free functions to services.QuotaStore.
type quotaStoreShim struct{}

// GetUser proxies repo.GetUser.
func (quotaStoreShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// Count proxies repo.GetRateLimitCount.
func (quotaStoreShim) Count(ctx context.Context, db *gorm.DB, userID, date string) (int, error) {
	return repo.GetRateLimitCount(ctx, db, userID, date)
}

// Increment proxies repo.IncrementRateLimit.
func (quotaStoreShim) Increment(ctx context.Context, db *gorm.DB, userID, date string) (int, error) {
	return repo.IncrementRateLimit(ctx, db, userID, date)
}

// movieStoreShim adapts repository free functions to services.MovieListStore.
type movieStoreShim struct{}

// GetUser proxies repo.GetUser.
func (movieStoreShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// UpdateFavoriteMovie proxies repo.UpdateFavoriteMovie.
func (movieStoreShim) UpdateFavoriteMovie(ctx context.Context, db *gorm.DB, userID string, favoriteMovie *string) error {
	return repo.UpdateFavoriteMovie(ctx, db, userID, favoriteMovie)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the session-protected public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter + gzip
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Session auth on the protected group only
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gen services.Generator, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (session tokens stay out of logs)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; payloads here are small JSON) + gzip
	r.Use(limitBody(64 << 10))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS); quota
	// and profile responses are per-user, so keep them out of shared caches.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (dev/staging only)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/provider
	quotaSvc := services.NewQuotaService(db, quotaStoreShim{})
	factSvc := services.NewFactService(db, factStoreShim{}, quotaSvc, gen)
	moviesSvc := services.NewMovieListService(db, movieStoreShim{})
	h := handlers.New(factSvc, moviesSvc, quotaSvc)

	// Session enrichment: resolve the verified identity to the stored user,
	// provisioning the account on first sign-in.
	enrich := func(ctx context.Context, ident middleware.Identity) (*domain.User, error) {
		return repo.EnsureUser(ctx, db, ident.Email, ident.Name, ident.AvatarURL)
	}

	// Public API (session required)
	api := r.Group(cfg.APIBasePath)
	api.Use(middleware.Session(middleware.SessionOptions{
		Secret: []byte(cfg.Session.Secret),
	}, enrich))
	{
		// Facts
		api.POST("/movie/fact", h.GetMovieFact)
		api.GET("/movie/fact", h.GetFavoriteFact)

		// Favorites
		api.POST("/user/update-movie", h.UpdateMovie)
		api.POST("/user/manage-movies", h.ManageMovies)

		// Quota / profile
		api.GET("/user/rate-limit-status", h.RateLimitStatus)
		api.GET("/me", h.Me)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
