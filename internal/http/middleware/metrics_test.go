package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsRequestsByRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/movie/fact", func(c *gin.Context) {
		c.String(http.StatusOK, `{"fact":"Shot in 6 countries."}`)
	})
	r.GET("/rate-limit-status", func(c *gin.Context) {
		c.Status(http.StatusNoContent) // no body, size stays -1
	})

	// Collectors are package globals, so measure deltas.
	baseFact := testutil.ToFloat64(reqTotal.WithLabelValues("GET", "/movie/fact", "200"))
	baseMiss := testutil.ToFloat64(reqTotal.WithLabelValues("GET", "/unknown", "404"))

	hit := func(path string, want int) {
		t.Helper()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("GET %s -> %d; want %d", path, w.Code, want)
		}
	}

	hit("/movie/fact", http.StatusOK)
	hit("/unknown", http.StatusNotFound) // no route, raw path label
	hit("/rate-limit-status", http.StatusNoContent)

	if got := testutil.ToFloat64(reqTotal.WithLabelValues("GET", "/movie/fact", "200")); got != baseFact+1 {
		t.Fatalf("counter /movie/fact 200 = %v; want %v", got, baseFact+1)
	}
	if got := testutil.ToFloat64(reqTotal.WithLabelValues("GET", "/unknown", "404")); got != baseMiss+1 {
		t.Fatalf("counter raw-path 404 = %v; want %v", got, baseMiss+1)
	}
	if got := testutil.ToFloat64(reqInFlight); got != 0 {
		t.Fatalf("in-flight gauge = %v after completion; want 0", got)
	}
	// The 204 route exercises the size<0 skip; the 200 route observed a
	// positive response size. Histogram bucket values are timing-dependent
	// and not asserted.
}

func TestMetrics_InFlightDuringHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/movie/fact", func(c *gin.Context) {
		if got := testutil.ToFloat64(reqInFlight); got < 1 {
			t.Fatalf("in-flight gauge = %v inside handler; want >= 1", got)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movie/fact", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
