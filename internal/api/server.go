// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/kinoteka/internal/platform/config"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// RouteRegistrar is implemented by every page handler set.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// SessionLayer loads the browser session before identity resolution.
type SessionLayer interface {
	middleware.SessionReader
	Middleware(next http.Handler) http.Handler
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when postgres and redis answer.
	Readiness http.HandlerFunc

	// Movies serves the index, movie pages, reviews and the top list.
	Movies RouteRegistrar

	// Directors and Actors serve the people pages.
	Directors RouteRegistrar
	Actors    RouteRegistrar

	// Accounts serves /accounts/ (register, login, logout, profile, OAuth).
	Accounts RouteRegistrar
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions SessionLayer, resolver middleware.IdentityResolver, h Handlers) *Server {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.CleanPath)

	// # Infrastructure Endpoints
	// Probes run without a session so they never touch Redis implicitly.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Site Pages
	r.Group(func(site chi.Router) {
		site.Use(sessions.Middleware)
		site.Use(middleware.Authenticate(sessions, resolver))

		for _, registrar := range []RouteRegistrar{h.Movies, h.Directors, h.Actors, h.Accounts} {
			if registrar != nil {
				registrar.RegisterRoutes(site)
			}
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
