// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/settings"
)

// handleLogin authenticates an admin and sets the session cookie. The
// failure response is identical for unknown email and wrong password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r.Body, &req); err != nil {
		respondError(w, s.logger, err)
		return
	}

	rec, value, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		respondError(w, s.logger, err)
		return
	}
	s.metrics.LoginsTotal.WithLabelValues("success").Inc()

	http.SetCookie(w, s.codec.NewSessionCookie(value))
	respondJSON(w, http.StatusOK, sessionResponse(rec))
}

// handleLogout clears the session cookie. Idempotent: logging out
// without a session is still a success.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.codec.ExpiredSessionCookie())
	respondJSON(w, http.StatusOK, sessionResponse{IsLoggedIn: false})
}

// handleSession reports the current session without requiring one, so
// the client can render login state. Invalid cookies read as logged out.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	rec, err := s.auth.Authorize(r)
	if err != nil {
		respondJSON(w, http.StatusOK, sessionResponse{IsLoggedIn: false})
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse(rec))
}

// handleListProperties serves the public listing page: published
// properties matching every supplied filter, newest first.
func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	criteria, err := catalog.ParseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	s.metrics.FilterQueries.Inc()

	props, err := s.catalog.List(r.Context(), criteria)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyResponses(props))
}

// handleGetProperty serves the public detail page by slug. Unpublished
// listings are indistinguishable from absent ones.
func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := s.catalog.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	if !p.IsPublished {
		respondError(w, s.logger, catalog.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyResponse(p))
}

// handleFilterMeta serves the filter facets: distinct published areas
// and the configured amenity vocabulary.
func (s *Server) handleFilterMeta(w http.ResponseWriter, r *http.Request) {
	areas, err := s.catalog.Areas(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	if areas == nil {
		areas = []string{}
	}

	vocab := []string{}
	cfg, err := s.settings.Get(r.Context())
	switch {
	case err == nil:
		if cfg.AmenitiesVocabulary != nil {
			vocab = cfg.AmenitiesVocabulary
		}
	case errors.Is(err, settings.ErrNotFound):
		// No settings row yet; serve an empty vocabulary.
	default:
		respondError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, filterMetaResponse{
		Areas:               areas,
		AmenitiesVocabulary: vocab,
	})
}

// handleAdminListProperties serves the admin index, published or not,
// optionally narrowed by a title/area substring.
func (s *Server) handleAdminListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.catalog.SearchAdmin(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyResponses(props))
}

func (s *Server) handleAdminCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeBody(r.Body, &req); err != nil {
		respondError(w, s.logger, err)
		return
	}

	p := req.toProperty()
	if err := s.catalog.Create(r.Context(), p); err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPropertyResponse(p))
}

func (s *Server) handleAdminGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parsePropertyID(r)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (s *Server) handleAdminUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parsePropertyID(r)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	upd, err := decodeFieldUpdate(r.Body)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	p, err := s.catalog.Update(r.Context(), id, upd)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (s *Server) handleAdminDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parsePropertyID(r)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAdminGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Get(r.Context())
	if errors.Is(err, settings.ErrNotFound) {
		// Never configured; hand the admin form an empty default.
		respondJSON(w, http.StatusOK, toSettingsResponse(&settings.SiteSettings{ID: settings.DefaultID}))
		return
	}
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettingsResponse(cfg))
}

func (s *Server) handleAdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeBody(r.Body, &req); err != nil {
		respondError(w, s.logger, err)
		return
	}

	cfg := req.toSettings()
	if err := s.settings.Upsert(r.Context(), cfg); err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettingsResponse(cfg))
}

func parsePropertyID(r *http.Request) (ulid.ULID, error) {
	id, err := ulid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return ulid.ULID{}, oops.Code("REQUEST_MALFORMED").
			With("id", chi.URLParam(r, "id")).
			Wrapf(err, "parsing property id")
	}
	return id, nil
}
