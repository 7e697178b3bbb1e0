// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/auth"
	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/logging"
	"github.com/realprop/realprop/internal/settings"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

// respondError maps a domain error to its status class and writes a
// generic body. Auth and store failures are indistinguishable beyond the
// status code; internals never leak to the client.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.LogError(logger, "request failed", err)
	}
	respondJSON(w, status, errorResponse{Error: messageForStatus(status)})
}

func statusForError(err error) int {
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, auth.ErrNotFound) ||
		errors.Is(err, settings.ErrNotFound) {
		return http.StatusNotFound
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch oopsErr.Code() {
	case "AUTH_INVALID_CREDENTIALS", "AUTH_UNAUTHORIZED":
		return http.StatusUnauthorized
	case "FILTER_MALFORMED", "PROPERTY_INVALID", "AUTH_INVALID_EMAIL", "REQUEST_MALFORMED":
		return http.StatusBadRequest
	case "CATALOG_SLUG_CONFLICT":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal server error"
	}
}
