// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Chronicle API.
// Handlers are grouped by resource and receive their dependencies through
// the handler struct.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/cache"
)

// maxBodyBytes caps JSON request bodies. Compiled book content passes
// through save-book, so the limit is generous.
const maxBodyBytes = 10 << 20

// errorBody is the uniform error payload: {error, details?}.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondJSON writes a JSON response with the given status code. It
// marshals first so encoding failures never produce a partial body.
func respondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// respondError writes the uniform error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondErrorDetails writes the uniform error body with details attached.
func respondErrorDetails(w http.ResponseWriter, status int, msg, details string) {
	respondJSON(w, status, errorBody{Error: msg, Details: details})
}

// respondCached writes a 200 JSON response and stores the body in the
// response cache when one is configured.
func respondCached(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if rc != nil {
		rc.Set(r.Context(), key, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// decodeJSON reads the request body into dest, bounding its size.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// urlUUID parses a UUID route parameter. The second return is false when
// the parameter is missing or malformed; callers respond 400 in that case.
func urlUUID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
