// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"inkpress/internal/cache"
	"inkpress/internal/models"
	"inkpress/internal/store"
	"inkpress/internal/textutil"
)

// Comments groups the comment handlers. Adding is public, removal is
// an administrative operation.
type Comments struct {
	store store.Store
	cache *cache.ResponseCache
}

// NewComments creates the comments handler group. cache may be nil.
func NewComments(st store.Store, rc *cache.ResponseCache) *Comments {
	return &Comments{store: st, cache: rc}
}

// Add appends a comment to an article. Comment IDs are scoped to their
// article, so two articles can both hold a comment with ID 1.
func (h *Comments) Add(w http.ResponseWriter, r *http.Request) {
	articleID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validate(req); err != nil {
		handleError(w, r, err)
		return
	}

	var comment models.Comment
	err = h.store.Update(func(data *models.BlogData) error {
		a := findArticle(data, articleID)
		if a == nil {
			return failf(ErrNotFound, "Article not found")
		}
		comment = models.Comment{
			ID:      models.NextID(a.Comments),
			Content: textutil.SanitizeHTML(req.Content),
			Date:    models.Timestamp(),
		}
		a.Comments = append(a.Comments, comment)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.cache.InvalidateAll(r.Context())
	comment.FormattedDate = textutil.FormatDatetime(comment.Date)
	writeJSON(w, http.StatusCreated, comment)
}

// Delete removes a single comment from an article.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	articleID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	commentID, err := idParam(r, "commentId")
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = h.store.Update(func(data *models.BlogData) error {
		a := findArticle(data, articleID)
		if a == nil {
			return failf(ErrNotFound, "Article not found")
		}
		for i, c := range a.Comments {
			if c.ID == commentID {
				a.Comments = append(a.Comments[:i], a.Comments[i+1:]...)
				return nil
			}
		}
		return failf(ErrNotFound, "Comment not found")
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.cache.InvalidateAll(r.Context())
	slog.Info("comment deleted", "article", articleID, "comment", commentID)
	w.WriteHeader(http.StatusNoContent)
}
