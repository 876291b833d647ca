package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// metricsMiddleware records request counts, durations and in-flight gauge
// labelled by the matched chi route pattern.
func (h *Handler) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.metrics.HTTPRequestsInFlight.Inc()
		defer h.metrics.HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		h.metrics.HTTPRequestsTotal.
			WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		h.metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

// rateLimitMiddleware applies a process-wide token bucket. A non-positive
// requestsPerSec disables limiting entirely.
func rateLimitMiddleware(requestsPerSec float64, burst int) func(http.Handler) http.Handler {
	if requestsPerSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(requestsPerSec), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
