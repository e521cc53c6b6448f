// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Each test environment gets its own JSON document in a temp directory,
// so tests never share state and never touch a real data file.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/auth"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Store      *store.JSONStore
	Tokens     *auth.TokenManager
	UploadDir  string
	Auth       *Auth
	Articles   *Articles
	Categories *Categories
	Comments   *Comments
	Uploads    *Uploads
}

// newTestEnv creates a complete test environment backed by a fresh
// document store. The response cache is left nil; the cache package has
// its own tests against a live Valkey.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	st := store.NewJSONStore(filepath.Join(dir, "blog.json"))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	uploadDir := filepath.Join(dir, "uploads")

	return &testEnv{
		Store:      st,
		Tokens:     tokens,
		UploadDir:  uploadDir,
		Auth:       NewAuth(st, tokens),
		Articles:   NewArticles(st, nil),
		Categories: NewCategories(st, nil),
		Comments:   NewComments(st, nil),
		Uploads:    NewUploads(uploadDir, nil),
	}
}

// seedAdmin writes an admin account straight into the store.
func (env *testEnv) seedAdmin(t *testing.T, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	err = env.Store.Update(func(data *models.BlogData) error {
		data.Admin = &models.Admin{Username: username, PasswordHash: hash}
		return nil
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

// jsonRequest builds a request with a JSON-encoded body.
func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// itoa shortens strconv.Itoa for route parameters.
func itoa(id int) string { return strconv.Itoa(id) }

// decodeBody unmarshals a recorded JSON response body into dst.
func decodeBody(t *testing.T, body *bytes.Buffer, dst any) {
	t.Helper()

	if err := json.Unmarshal(body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", body.String(), err)
	}
}
