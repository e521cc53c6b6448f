// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"inkpress/internal/models"
)

// JSONStore keeps the blog document in a single JSON file on disk.
// All access is serialized behind one mutex so concurrent requests cannot
// interleave their read-modify-write cycles.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore returns a store backed by the JSON file at path. The file
// is created lazily with seed data on first load.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns the current document. A missing file is bootstrapped with
// seed data, which is persisted immediately so the next load sees it. A
// file that exists but cannot be parsed is logged and replaced by fresh
// seed data in the response — a corrupt data file must never surface as a
// failed API request.
func (s *JSONStore) Load() (*models.BlogData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs fn against the current document and saves the result, all
// under the store lock. If fn returns an error the document is not saved.
func (s *JSONStore) Update(fn func(*models.BlogData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.save(data)
}

// load reads and parses the data file. Caller must hold s.mu.
func (s *JSONStore) load() (*models.BlogData, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		data := models.DefaultData()
		if err := s.save(data); err != nil {
			return nil, err
		}
		slog.Info("data file created with seed data", "path", s.path)
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var data models.BlogData
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Error("data file is not valid JSON, serving seed data", "path", s.path, "error", err)
		return models.DefaultData(), nil
	}
	return &data, nil
}

// save writes the full document, replacing prior contents. Caller must
// hold s.mu.
func (s *JSONStore) save(data *models.BlogData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	payload, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}
