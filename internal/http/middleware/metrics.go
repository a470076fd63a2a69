// Prometheus instrumentation for the movie facts API. Metrics() records
// request counts, latency, in-flight concurrency, and response sizes under
// the moviefacts namespace.
//
// Labels are kept low-cardinality on purpose:
//
//   - method: HTTP verb (GET/POST)
//   - path:   registered route pattern (e.g. /api/v1/movie/fact); the raw
//     URL path only when no route matched
//   - status: numeric status code string ("200", "429")
//
// The 429 series is the one worth alerting on here: it counts users hitting
// the daily fact quota.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// metricsNamespace prefixes every collector so this service's series are
// unambiguous on a shared Prometheus.
const metricsNamespace = "moviefacts"

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route, and status.",
		},
		[]string{"method", "path", "status"},
	)

	// Status is omitted from the latency histogram to keep cardinality down.
	// Fact generation calls out to the LLM, so the buckets stretch well past
	// the defaults on the high end.
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds, by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	reqInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being handled.",
		},
	)

	// Responses are small JSON envelopes (a fact is a sentence or two), so
	// the size buckets stop at 100 KiB.
	respBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes, by method and route.",
			Buckets: []float64{
				100, 250, 500, 1 << 10, 2 << 10,
				5 << 10, 10 << 10, 25 << 10, 50 << 10, 100 << 10,
			},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(reqTotal, reqDuration, reqInFlight, respBytes)
}

// Metrics instruments each request with the collectors above. Mount it before
// the route handlers and expose promhttp.Handler() on /metrics:
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// The path label comes from routePath, so unmatched URLs show up under their
// raw path while matched routes stay aggregated by pattern. Responses without a body report size -1 and are skipped in the
// size histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInFlight.Inc()
		defer reqInFlight.Dec()

		c.Next()

		path := routePath(c)
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		reqTotal.WithLabelValues(method, path, status).Inc()
		reqDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			respBytes.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
