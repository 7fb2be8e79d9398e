package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/metrics"
	"golang.org/x/time/rate"
)

// RequestLogger logs method, path, status and duration for every request.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// RequestMetrics feeds request latency into the API histogram.
func RequestMetrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, rec.status, time.Since(start).Seconds())
		})
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RateLimiter applies a per-client token bucket keyed by remote address.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a RateLimiter allowing limit requests per second
// with the given burst per client.
func NewRateLimiter(limit float64, burst int) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Limit(limit),
		burst:   burst,
	}
}

// Middleware rejects requests exceeding the client's budget with 429.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientKey(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	limiter, ok := rl.clients[key]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[key] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// clientKey identifies a client by host, falling back to the full remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
