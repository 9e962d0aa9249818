// Package api exposes the HTTP surface: subscriber signup and confirmation,
// authenticated newsletter publishing, and a health probe.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/service/newsletter"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// Server is the HTTP server and its wiring.
type Server struct {
	subscriptions *subscription.Service
	newsletters   *newsletter.Service
	validator     *auth.Validator
	db            *sql.DB // nil in database-less demo mode
	limiter       *rateLimiter

	router *chi.Mux
	server *http.Server
}

// Options carries the optional server collaborators.
type Options struct {
	// DB is pinged by the health probe when set.
	DB *sql.DB
	// Redis enables per-IP signup rate limiting when set.
	Redis *redis.Client
	// SubscribeLimit is the signups allowed per IP per minute. Zero means
	// the default.
	SubscribeLimit int
}

// NewServer wires the services into a router.
func NewServer(
	subscriptions *subscription.Service,
	newsletters *newsletter.Service,
	validator *auth.Validator,
	opts Options,
) *Server {
	s := &Server{
		subscriptions: subscriptions,
		newsletters:   newsletters,
		validator:     validator,
		db:            opts.DB,
		limiter:       newRateLimiter(opts.Redis, opts.SubscribeLimit),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe starts the HTTP server on addr and blocks until it stops.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute, // broadcasts can take a while
		IdleTimeout:       2 * time.Minute,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
