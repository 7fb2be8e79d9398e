package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/collections"
	"github.com/desertthunder/ytshelf/internal/metrics"
	"github.com/desertthunder/ytshelf/internal/shared"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles the dependencies needed to build the API router.
type RouterDeps struct {
	Engine    *collections.Engine
	Logger    *log.Logger
	Registry  *prometheus.Registry
	RateLimit float64
	RateBurst int
}

// NewRouter builds the chi router for the collection API.
//
// Middleware order: request logging, then per-client rate limiting. The
// health and metrics endpoints sit outside the rate limit.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}

	r := chi.NewRouter()
	h := NewHandler(deps.Engine, deps.Logger)
	limiter := NewRateLimiter(deps.RateLimit, deps.RateBurst)

	r.Use(RequestLogger(deps.Logger))
	if deps.Registry != nil {
		r.Use(RequestMetrics(metrics.NewHTTPMetrics(deps.Registry)))
	}

	r.Get("/healthz", h.Health)
	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware())

		r.Route("/api/collections", func(r chi.Router) {
			r.Post("/", h.CreateCollection)
			r.Get("/", h.ListCollections)
			r.Get("/search", h.SearchCollections)
			r.Get("/export", h.ExportCollections)
			r.Post("/import", h.ImportCollections)
			r.Post("/batch", h.BatchOperations)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetCollection)
				r.Patch("/", h.UpdateCollection)
				r.Delete("/", h.DeleteCollection)
				r.Put("/move", h.MoveCollection)
				r.Get("/content", h.GetContent)
				r.Post("/items", h.AddItems)
				r.Delete("/items", h.RemoveItems)
				r.Get("/settings", h.GetSettings)
				r.Put("/settings", h.UpdateSettings)
			})
		})
	})

	return r
}
