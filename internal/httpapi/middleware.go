// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/realprop/realprop/internal/auth"
	"github.com/realprop/realprop/internal/observability"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the admin session attached by RequireAdmin.
func SessionFromContext(ctx context.Context) (auth.SessionRecord, bool) {
	rec, ok := ctx.Value(sessionContextKey).(auth.SessionRecord)
	return rec, ok
}

// requireAdmin guards the admin routes. Every failure mode — no cookie,
// tampered cookie, wrong key, logged-out record — is rejected with the
// same 401 before the handler runs.
func requireAdmin(gate *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := gate.Authorize(r)
			if err != nil {
				respondError(w, logger, err)
				return
			}
			ctx := context.WithValue(r.Context(), sessionContextKey, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger emits one structured line per request after it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// countRequests records per-route, per-status request totals. Routes are
// the chi patterns, not raw paths, to keep label cardinality bounded.
func countRequests(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.
				WithLabelValues(route, strconv.Itoa(ww.Status())).
				Inc()
		})
	}
}
