// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"inkpress/internal/models"
)

func testStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSONStore(filepath.Join(t.TempDir(), "data", "blog.json"))
}

func TestLoadMissingFileSeedsAndPersists(t *testing.T) {
	s := testStore(t)

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Admin != nil {
		t.Error("fresh store must have no admin")
	}
	if len(data.Categories) != 2 || len(data.Articles) != 1 {
		t.Errorf("seed shape: %d categories, %d articles", len(data.Categories), len(data.Articles))
	}

	// The seed must have been written to disk, not just returned.
	if _, err := os.Stat(s.path); err != nil {
		t.Fatalf("data file not persisted: %v", err)
	}
}

func TestLoadCorruptFileFallsBackToSeed(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load must not fail on a corrupt file: %v", err)
	}
	if len(data.Categories) != 2 {
		t.Errorf("expected seed data on corrupt file, got %d categories", len(data.Categories))
	}
}

func TestUpdatePersists(t *testing.T) {
	s := testStore(t)

	err := s.Update(func(data *models.BlogData) error {
		data.Articles[0].Views = 42
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Articles[0].Views != 42 {
		t.Errorf("views after update: got %d, want 42", data.Articles[0].Views)
	}
}

func TestUpdateErrorAborts(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("nope")
	err := s.Update(func(data *models.BlogData) error {
		data.Articles = nil
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update error: got %v, want %v", err, wantErr)
	}

	data, _ := s.Load()
	if len(data.Articles) != 1 {
		t.Error("failed update must not be persisted")
	}
}

func TestLoadReturnsPrivateCopy(t *testing.T) {
	s := testStore(t)

	first, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	first.Articles[0].Title = "mutated in memory"

	second, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if second.Articles[0].Title == "mutated in memory" {
		t.Error("mutating a loaded document must not leak into stored state")
	}
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(data *models.BlogData) error {
				data.Articles[0].Likes++
				return nil
			})
		}()
	}
	wg.Wait()

	data, _ := s.Load()
	if data.Articles[0].Likes != n {
		t.Errorf("likes after %d concurrent updates: got %d", n, data.Articles[0].Likes)
	}
}
