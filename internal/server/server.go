// package server exposes the collection engine over HTTP.
//
// The transport layer is intentionally thin: it parses requests, resolves the
// owner from the X-Owner-ID header (session handling lives upstream) and maps
// engine errors to status codes. All domain rules live in the engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/collections"
	"github.com/desertthunder/ytshelf/internal/shared"
	"github.com/prometheus/client_golang/prometheus"
)

// Server wraps an [http.Server] with the collection API router.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// ServerOpts contains dependencies for creating a Server.
type ServerOpts struct {
	Config   *shared.ServerConfig
	Engine   *collections.Engine
	Logger   *log.Logger
	Registry *prometheus.Registry
}

// NewServer creates a Server listening on the configured host and port.
func NewServer(opts ServerOpts) *Server {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	router := NewRouter(RouterDeps{
		Engine:    opts.Engine,
		Logger:    opts.Logger,
		Registry:  opts.Registry,
		RateLimit: opts.Config.RateLimit,
		RateBurst: opts.Config.RateBurst,
	})

	addr := fmt.Sprintf("%s:%d", opts.Config.Host, opts.Config.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		logger: opts.Logger,
	}
}

// Start begins serving requests and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
