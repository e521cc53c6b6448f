// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"inkpress/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// usernameKey is the context key for the authenticated admin username.
const usernameKey contextKey = "username"

// RequireAuth gates mutating routes behind a valid bearer token. A missing
// or malformed Authorization header, or a token that fails verification,
// short-circuits with 401 before the wrapped handler runs — in particular,
// no document load happens for rejected requests.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w, "Missing or invalid authorization header")
				return
			}

			username, err := tokens.Verify(strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromCtx extracts the authenticated username set by RequireAuth.
// Returns "" for unauthenticated requests.
func UsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// unauthorized writes the standard 401 JSON error body.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
