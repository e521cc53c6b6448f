// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the REST API over the blog document store:
// auth, articles, categories, comments, and image uploads. Business
// failures travel as typed errors and are translated to status codes in
// one place; unexpected failures are logged and surfaced as a generic 500.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Error kinds for business failures. Handlers wrap these with context via
// fmt.Errorf("%w: ...") and handleError maps them to status codes.
// Conflicts map to 400, not 409, preserving the wire behavior the
// frontend was built against.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// errorMessage holds a caller-facing message attached to an error kind.
type errorMessage struct {
	kind error
	msg  string
}

func (e *errorMessage) Error() string { return e.msg }
func (e *errorMessage) Unwrap() error { return e.kind }

// failf builds a business error of the given kind with a caller-facing
// message. The message is safe to return in the response body.
func failf(kind error, format string, args ...any) error {
	return &errorMessage{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes a structured {"error": message} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleError translates a business error into its HTTP response. Errors
// outside the taxonomy are logged with context and answered with a
// generic 500 — internal details never reach the caller.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()

	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, ErrConflict):
		// Historical wire behavior: conflicts are 400s.
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, msg)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, msg)
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON parses the request body into dst, mapping malformed input to
// a validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return failf(ErrValidation, "Invalid request data")
	}
	return nil
}
