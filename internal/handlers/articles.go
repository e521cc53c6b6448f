// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/cache"
	"inkpress/internal/markdown"
	"inkpress/internal/models"
	"inkpress/internal/store"
	"inkpress/internal/textutil"
)

// articlesCacheKey identifies the cached article-list response.
const articlesCacheKey = "articles"

// Articles groups the article CRUD handlers.
type Articles struct {
	store store.Store
	cache *cache.ResponseCache
}

// NewArticles creates the articles handler group. cache may be nil.
func NewArticles(st store.Store, rc *cache.ResponseCache) *Articles {
	return &Articles{store: st, cache: rc}
}

// idParam parses the {id} route parameter as a positive integer.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, failf(ErrNotFound, "Not found")
	}
	return id, nil
}

// List returns every article newest-first, each with its summary,
// formatted date, and resolved category, plus all categories annotated
// with live article counts (sorted by count, descending).
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, ok := h.cache.Get(ctx, articlesCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	data, err := h.store.Load()
	if err != nil {
		handleError(w, r, err)
		return
	}

	sortByDateDesc(data.Articles)
	byID := categoryIndex(data.Categories)

	articles := make([]models.Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		articles = append(articles, listProjection(a, byID))
	}

	body, err := json.Marshal(map[string]any{
		"articles":   articles,
		"categories": categoriesWithCounts(data),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.cache.Set(ctx, articlesCacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// articleDetail is the detail response shape. Unlike the list, the
// detail always carries the category key, null when the article's
// categoryId resolves to nothing.
type articleDetail struct {
	models.Article
	Category *models.Category `json:"category"`
}

// Get returns one article with its category, rendered body, and formatted
// dates. With ?increment_views=true the view counter is bumped and
// persisted within the same read-modify-write cycle, before responding.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var article models.Article
	var categories []models.Category

	if r.URL.Query().Get("increment_views") == "true" {
		err = h.store.Update(func(data *models.BlogData) error {
			a := findArticle(data, id)
			if a == nil {
				return failf(ErrNotFound, "Article not found")
			}
			a.Views++
			article = *a
			categories = data.Categories
			return nil
		})
		if err == nil {
			h.invalidate(r)
		}
	} else {
		err = func() error {
			data, loadErr := h.store.Load()
			if loadErr != nil {
				return loadErr
			}
			a := findArticle(data, id)
			if a == nil {
				return failf(ErrNotFound, "Article not found")
			}
			article = *a
			categories = data.Categories
			return nil
		}()
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	article.FormattedDate = textutil.FormatDatetime(article.Date)
	for i := range article.Comments {
		article.Comments[i].FormattedDate = textutil.FormatDatetime(article.Comments[i].Date)
	}
	if html, err := markdown.Render(article.Content); err == nil {
		article.ContentHTML = html
	} else {
		slog.Warn("article body render failed", "id", article.ID, "error", err)
	}

	detail := articleDetail{Article: article}
	if cat, ok := categoryIndex(categories)[article.CategoryID]; ok {
		c := cat
		detail.Category = &c
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create stores a new article. Title and content are tag-stripped before
// persistence; the creation date is assigned here and never changes.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	var article models.Article
	err := h.store.Update(func(data *models.BlogData) error {
		article = models.Article{
			ID:         models.NextID(data.Articles),
			Title:      textutil.SanitizeHTML(req.Title),
			Content:    textutil.SanitizeHTML(req.Content),
			CategoryID: req.CategoryID,
			Date:       models.Timestamp(),
			Comments:   []models.Comment{},
		}
		data.Articles = append(data.Articles, article)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	slog.Info("article created", "id", article.ID, "title", article.Title)
	writeJSON(w, http.StatusCreated, article)
}

// Update rewrites the title, content, and category of an existing article.
// The creation date and the counters stay untouched.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	var article models.Article
	err = h.store.Update(func(data *models.BlogData) error {
		a := findArticle(data, id)
		if a == nil {
			return failf(ErrNotFound, "Article not found")
		}
		a.Title = textutil.SanitizeHTML(req.Title)
		a.Content = textutil.SanitizeHTML(req.Content)
		a.CategoryID = req.CategoryID
		article = *a
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	writeJSON(w, http.StatusOK, article)
}

// Delete removes an article together with all its comments — the record
// is one unit, so nothing can be orphaned.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = h.store.Update(func(data *models.BlogData) error {
		for i, a := range data.Articles {
			if a.ID == id {
				data.Articles = append(data.Articles[:i], data.Articles[i+1:]...)
				return nil
			}
		}
		return failf(ErrNotFound, "Article not found")
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	slog.Info("article deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Like increments the like counter. There is no per-user accounting:
// every call counts, repeats included.
func (h *Articles) Like(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var likes int
	err = h.store.Update(func(data *models.BlogData) error {
		a := findArticle(data, id)
		if a == nil {
			return failf(ErrNotFound, "Article not found")
		}
		a.Likes++
		likes = a.Likes
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

// invalidate drops all cached list responses after a successful mutation.
func (h *Articles) invalidate(r *http.Request) {
	h.cache.InvalidateAll(r.Context())
}

// findArticle returns a pointer into the document's article slice, or nil.
func findArticle(data *models.BlogData, id int) *models.Article {
	for i := range data.Articles {
		if data.Articles[i].ID == id {
			return &data.Articles[i]
		}
	}
	return nil
}
