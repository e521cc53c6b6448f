// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// articles_crud_test.go covers the article handlers: create, read with
// view counting, list projections, update, like, and delete.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkpress/internal/models"
)

// createArticle drives the Create handler and returns the stored article.
func createArticle(t *testing.T, env *testEnv, title, content string, categoryID int) models.Article {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/api/articles",
		map[string]any{"title": title, "content": content, "categoryId": categoryID})
	rec := httptest.NewRecorder()
	env.Articles.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var article models.Article
	decodeBody(t, rec.Body, &article)
	return article
}

// getArticle drives the Get handler for one ID.
func getArticle(t *testing.T, env *testEnv, id string, incrementViews bool) *httptest.ResponseRecorder {
	t.Helper()

	target := "/api/articles/" + id
	if incrementViews {
		target += "?increment_views=true"
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = withChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	env.Articles.Get(rec, req)
	return rec
}

// TestArticleCreate_SanitizesAndAssignsSequentialIDs verifies tags are
// stripped on write and IDs continue from the highest existing one.
func TestArticleCreate_SanitizesAndAssignsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)

	article := createArticle(t, env, "<b>Hello</b>", "<p>Body <script>x()</script></p>", 1)

	if article.Title != "Hello" {
		t.Errorf("title: got %q, want %q", article.Title, "Hello")
	}
	if article.Content != "Body x()" {
		t.Errorf("content: got %q, want %q", article.Content, "Body x()")
	}
	// The seeded document already holds article 1.
	if article.ID != 2 {
		t.Errorf("id: got %d, want 2", article.ID)
	}
	if article.Date == "" {
		t.Error("date not assigned")
	}
	if article.Comments == nil {
		t.Error("comments not initialized")
	}

	next := createArticle(t, env, "Second", "More text", 1)
	if next.ID != 3 {
		t.Errorf("next id: got %d, want 3", next.ID)
	}
}

// TestArticleCreate_RejectsInvalidPayloads checks the validation gate.
func TestArticleCreate_RejectsInvalidPayloads(t *testing.T) {
	env := newTestEnv(t)

	for name, payload := range map[string]map[string]any{
		"missing title":    {"content": "x", "categoryId": 1},
		"blank title":      {"title": "   ", "content": "x", "categoryId": 1},
		"missing content":  {"title": "x", "categoryId": 1},
		"zero category":    {"title": "x", "content": "y", "categoryId": 0},
		"negative categor": {"title": "x", "content": "y", "categoryId": -3},
	} {
		req := jsonRequest(t, http.MethodPost, "/api/articles", payload)
		rec := httptest.NewRecorder()
		env.Articles.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want %d", name, rec.Code, http.StatusBadRequest)
		}
	}
}

// TestArticleGet_IncrementViewsPersists verifies the counter only moves
// when asked, and that the bump survives a reload from disk.
func TestArticleGet_IncrementViewsPersists(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Counted", "Body", 1)
	id := itoa(article.ID)

	rec := getArticle(t, env, id, false)
	var got models.Article
	decodeBody(t, rec.Body, &got)
	if got.Views != 0 {
		t.Errorf("views after plain get: got %d, want 0", got.Views)
	}

	for i := 0; i < 3; i++ {
		getArticle(t, env, id, true)
	}

	data, err := env.Store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, a := range data.Articles {
		if a.ID == article.ID && a.Views != 3 {
			t.Errorf("persisted views: got %d, want 3", a.Views)
		}
	}
}

// TestArticleGet_ProjectsCategoryAndHTML verifies the detail response
// carries the resolved category, formatted date, and rendered body.
func TestArticleGet_ProjectsCategoryAndHTML(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Projected", "# Heading\n\nSome *emphasis*.", 1)

	rec := getArticle(t, env, itoa(article.ID), false)

	var got models.Article
	decodeBody(t, rec.Body, &got)
	if got.Category == nil || got.Category.ID != 1 {
		t.Errorf("category: got %+v", got.Category)
	}
	if got.FormattedDate == "" {
		t.Error("formatted_date missing")
	}
	if !strings.Contains(got.ContentHTML, "<h1") || !strings.Contains(got.ContentHTML, "<em>emphasis</em>") {
		t.Errorf("content_html: got %q", got.ContentHTML)
	}
}

// TestArticleGet_DanglingCategoryIsNull verifies the detail response
// still carries the category key, as an explicit null, when the stored
// categoryId matches no category.
func TestArticleGet_DanglingCategoryIsNull(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Orphan", "Body", 42)

	rec := getArticle(t, env, itoa(article.ID), false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var raw map[string]json.RawMessage
	decodeBody(t, rec.Body, &raw)
	cat, ok := raw["category"]
	if !ok {
		t.Fatalf("category key missing: %s", rec.Body.String())
	}
	if string(cat) != "null" {
		t.Errorf("category: got %s, want null", cat)
	}
}

// TestArticleGet_UnknownID404s covers missing and malformed IDs.
func TestArticleGet_UnknownID404s(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"999", "0", "-1", "abc"} {
		rec := getArticle(t, env, id, false)
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: status got %d, want %d", id, rec.Code, http.StatusNotFound)
		}
	}
}

// TestArticleList_NewestFirstWithSummaries verifies ordering, the
// summary truncation, and the category annotations in one response.
func TestArticleList_NewestFirstWithSummaries(t *testing.T) {
	env := newTestEnv(t)

	long := strings.Repeat("word ", 40)
	older := createArticle(t, env, "Older", long, 1)
	newer := createArticle(t, env, "Newer", "short body", 2)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	rec := httptest.NewRecorder()
	env.Articles.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Articles   []models.Article  `json:"articles"`
		Categories []models.Category `json:"categories"`
	}
	decodeBody(t, rec.Body, &resp)

	if len(resp.Articles) != 3 {
		t.Fatalf("articles: got %d, want 3", len(resp.Articles))
	}
	if resp.Articles[0].ID != newer.ID || resp.Articles[1].ID != older.ID {
		t.Errorf("order: got ids %d, %d first", resp.Articles[0].ID, resp.Articles[1].ID)
	}

	summary := resp.Articles[1].Summary
	if !strings.HasSuffix(summary, "...") {
		t.Errorf("summary not truncated: %q", summary)
	}
	if len([]rune(summary)) > 103 {
		t.Errorf("summary too long: %d runes", len([]rune(summary)))
	}

	if len(resp.Categories) == 0 {
		t.Fatal("categories missing from list response")
	}
	counts := map[int]int{}
	for _, c := range resp.Categories {
		counts[c.ID] = c.ArticleCount
	}
	// Seeded article plus the two created above.
	if counts[1] != 2 || counts[2] != 1 {
		t.Errorf("category counts: got %v", counts)
	}
}

// TestArticleUpdate_RewritesFieldsKeepsCounters verifies an update
// changes title/content/category but never the date or counters.
func TestArticleUpdate_RewritesFieldsKeepsCounters(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Before", "Old body", 1)
	getArticle(t, env, itoa(article.ID), true)

	req := jsonRequest(t, http.MethodPut, "/api/articles/"+itoa(article.ID),
		map[string]any{"title": "<i>After</i>", "content": "New body", "categoryId": 2})
	req = withChiURLParam(req, "id", itoa(article.ID))
	rec := httptest.NewRecorder()
	env.Articles.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var got models.Article
	decodeBody(t, rec.Body, &got)
	if got.Title != "After" || got.Content != "New body" || got.CategoryID != 2 {
		t.Errorf("updated fields: got %+v", got)
	}
	if got.Date != article.Date {
		t.Errorf("date changed: %q -> %q", article.Date, got.Date)
	}
	if got.Views != 1 {
		t.Errorf("views: got %d, want 1", got.Views)
	}
}

// TestArticleLike_CountsEveryCall verifies likes accumulate without any
// per-caller bookkeeping.
func TestArticleLike_CountsEveryCall(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Likeable", "Body", 1)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/articles/"+itoa(article.ID)+"/like", nil)
		req = withChiURLParam(req, "id", itoa(article.ID))
		rec := httptest.NewRecorder()
		env.Articles.Like(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Likes int `json:"likes"`
		}
		decodeBody(t, rec.Body, &resp)
		last = resp.Likes
	}
	if last != 3 {
		t.Errorf("likes: got %d, want 3", last)
	}
}

// TestArticleDelete_RemovesArticleAndComments verifies deletion takes
// the comments with it and later reads answer 404.
func TestArticleDelete_RemovesArticleAndComments(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Doomed", "Body", 1)
	addComment(t, env, itoa(article.ID), "So long")

	req := httptest.NewRequest(http.MethodDelete, "/api/articles/"+itoa(article.ID), nil)
	req = withChiURLParam(req, "id", itoa(article.ID))
	rec := httptest.NewRecorder()
	env.Articles.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}

	if got := getArticle(t, env, itoa(article.ID), false); got.Code != http.StatusNotFound {
		t.Errorf("get after delete: status got %d, want %d", got.Code, http.StatusNotFound)
	}

	data, _ := env.Store.Load()
	for _, a := range data.Articles {
		if a.ID == article.ID {
			t.Error("article still present after delete")
		}
	}
}
