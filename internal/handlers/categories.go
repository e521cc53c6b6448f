// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkpress/internal/cache"
	"inkpress/internal/models"
	"inkpress/internal/store"
	"inkpress/internal/textutil"
)

// categoriesCacheKey identifies the cached category-list response.
const categoriesCacheKey = "categories"

// Categories groups the category CRUD handlers.
type Categories struct {
	store store.Store
	cache *cache.ResponseCache
}

// NewCategories creates the categories handler group. cache may be nil.
func NewCategories(st store.Store, rc *cache.ResponseCache) *Categories {
	return &Categories{store: st, cache: rc}
}

// List returns every category with its live article count, sorted by
// count descending. The body is a bare JSON array, not an object wrapper.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, ok := h.cache.Get(ctx, categoriesCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	data, err := h.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}

	body, err := json.Marshal(categoriesWithCounts(data))
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.cache.Set(ctx, categoriesCacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Get returns one category with its articles embedded newest-first, each
// carrying the usual list projection.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	data, err := h.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}

	var category *models.Category
	for i := range data.Categories {
		if data.Categories[i].ID == id {
			c := data.Categories[i]
			category = &c
			break
		}
	}
	if category == nil {
		handleError(w, r, failf(ErrNotFound, "Category not found"))
		return
	}

	byID := categoryIndex(data.Categories)
	owned := make([]models.Article, 0)
	for _, a := range data.Articles {
		if a.CategoryID == id {
			owned = append(owned, a)
		}
	}
	sortByDateDesc(owned)
	for i := range owned {
		owned[i] = listProjection(owned[i], byID)
	}
	category.ArticleCount = len(owned)

	writeJSON(w, http.StatusOK, map[string]any{
		"id":            category.ID,
		"name":          category.Name,
		"description":   category.Description,
		"article_count": category.ArticleCount,
		"articles":      owned,
	})
}

// Create stores a new category. Names are tag-stripped and must be unique
// across the collection.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	var category models.Category
	err := h.store.Update(func(data *models.BlogData) error {
		name := textutil.SanitizeHTML(req.Name)
		for _, c := range data.Categories {
			if c.Name == name {
				return failf(ErrConflict, "Category already exists")
			}
		}
		category = models.Category{
			ID:          models.NextID(data.Categories),
			Name:        name,
			Description: textutil.SanitizeHTML(req.Description),
		}
		data.Categories = append(data.Categories, category)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	slog.Info("category created", "id", category.ID, "name", category.Name)
	writeJSON(w, http.StatusCreated, category)
}

// Update rewrites a category's name and description. The new name must
// not collide with any other category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	var category models.Category
	err = h.store.Update(func(data *models.BlogData) error {
		var target *models.Category
		for i := range data.Categories {
			if data.Categories[i].ID == id {
				target = &data.Categories[i]
				break
			}
		}
		if target == nil {
			return failf(ErrNotFound, "Category not found")
		}

		name := textutil.SanitizeHTML(req.Name)
		for _, c := range data.Categories {
			if c.ID != id && c.Name == name {
				return failf(ErrConflict, "Category already exists")
			}
		}

		target.Name = name
		target.Description = textutil.SanitizeHTML(req.Description)
		category = *target
		for _, a := range data.Articles {
			if a.CategoryID == id {
				category.ArticleCount++
			}
		}
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	writeJSON(w, http.StatusOK, category)
}

// Delete removes an empty category. A category still referenced by any
// article is refused so no article is left pointing at nothing.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = h.store.Update(func(data *models.BlogData) error {
		for _, a := range data.Articles {
			if a.CategoryID == id {
				return failf(ErrConflict, "Cannot delete category that has articles")
			}
		}
		for i, c := range data.Categories {
			if c.ID == id {
				data.Categories = append(data.Categories[:i], data.Categories[i+1:]...)
				return nil
			}
		}
		return failf(ErrNotFound, "Category not found")
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	slog.Info("category deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// invalidate drops all cached list responses after a successful mutation.
func (h *Categories) invalidate(r *http.Request) {
	h.cache.InvalidateAll(r.Context())
}
