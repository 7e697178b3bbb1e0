// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package httpapi exposes the listing catalog and admin console over a
// JSON REST surface.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/auth"
	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/observability"
	"github.com/realprop/realprop/internal/settings"
)

// Config carries the dependencies and listen address for the API server.
type Config struct {
	Addr     string
	Catalog  *catalog.Service
	Auth     *auth.Service
	Settings settings.Repository
	Codec    *auth.CookieCodec
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	catalog    *catalog.Service
	auth       *auth.Service
	settings   settings.Repository
	codec      *auth.CookieCodec
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer wires the routes and returns an unstarted server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, oops.Errorf("catalog service is required")
	}
	if cfg.Auth == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cfg.Settings == nil {
		return nil, oops.Errorf("settings repository is required")
	}
	if cfg.Codec == nil {
		return nil, oops.Errorf("session codec is required")
	}
	if cfg.Metrics == nil {
		return nil, oops.Errorf("metrics are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalog:  cfg.Catalog,
		auth:     cfg.Auth,
		settings: cfg.Settings,
		codec:    cfg.Codec,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(countRequests(s.metrics))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/session", s.handleSession)

		r.Get("/properties", s.handleListProperties)
		r.Get("/properties/{slug}", s.handleGetProperty)
		r.Get("/filters", s.handleFilterMeta)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin(s.auth, s.logger))

			r.Get("/properties", s.handleAdminListProperties)
			r.Post("/properties", s.handleAdminCreateProperty)
			r.Get("/properties/{id}", s.handleAdminGetProperty)
			r.Put("/properties/{id}", s.handleAdminUpdateProperty)
			r.Delete("/properties/{id}", s.handleAdminDeleteProperty)

			r.Get("/settings", s.handleAdminGetSettings)
			r.Put("/settings", s.handleAdminUpdateSettings)
		})
	})

	return r
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("api server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return oops.Code("SERVER_FAILED").
			With("addr", s.httpServer.Addr).
			Wrapf(err, "serving http api")
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("api server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return oops.Wrapf(err, "shutting down http api")
	}
	return nil
}
