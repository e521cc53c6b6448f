// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the blog document persisted as a single JSON file
// and the helpers for ID assignment and seed data. JSON field names match
// the wire format consumed by the frontend (categoryId, date, views, ...).
package models

import "time"

// BlogData is the whole persisted document: at most one admin account plus
// the ordered category and article collections. It is always loaded and
// saved as one unit.
type BlogData struct {
	Admin      *Admin     `json:"admin"`
	Categories []Category `json:"categories"`
	Articles   []Article  `json:"articles"`
}

// Admin is the single administrator account. Password holds the bcrypt
// hash, never plaintext. TOTP fields are set only when two-factor
// authentication has been configured.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	TOTPSecret   string `json:"totpSecret,omitempty"`
	TOTPEnabled  bool   `json:"totpEnabled,omitempty"`
}

// Category groups articles. ArticleCount is derived from the article
// collection at read time; a stored value is a stale cache and must never
// be trusted as input.
type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ArticleCount int    `json:"article_count"`
}

// Article is a blog post with its embedded comments. Date is assigned once
// at creation and never changes. Summary, FormattedDate, ContentHTML, and
// Category are response-only projections.
type Article struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID int       `json:"categoryId"`
	Date       string    `json:"date"`
	Views      int       `json:"views"`
	Likes      int       `json:"likes"`
	Comments   []Comment `json:"comments"`

	Summary       string    `json:"summary,omitempty"`
	FormattedDate string    `json:"formatted_date,omitempty"`
	ContentHTML   string    `json:"content_html,omitempty"`
	Category      *Category `json:"category,omitempty"`
}

// Comment belongs to one article. IDs are unique within the parent
// article's comment list, not globally.
type Comment struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`

	FormattedDate string `json:"formatted_date,omitempty"`
}

// Identifiable is satisfied by every collection element that carries a
// numeric ID, so NextID can work over articles, categories, and comments.
type Identifiable interface {
	Ident() int
}

func (a Article) Ident() int  { return a.ID }
func (c Category) Ident() int { return c.ID }
func (c Comment) Ident() int  { return c.ID }

// NextID returns max(existing IDs) + 1, or 1 for an empty collection.
// Gaps left by deletions are never reused.
func NextID[T Identifiable](items []T) int {
	maxID := 0
	for _, item := range items {
		if id := item.Ident(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// Timestamp returns the creation-time string stored on articles and
// comments: local time in ISO 8601 without a zone, matching the historical
// data files.
func Timestamp() string {
	return time.Now().Format("2006-01-02T15:04:05.999999")
}

// DefaultData builds the seed document used when no data file exists yet:
// two starter categories, one welcome article, and no admin account.
// Registration of the admin is the first thing a fresh install does.
func DefaultData() *BlogData {
	now := Timestamp()
	return &BlogData{
		Admin: nil,
		Categories: []Category{
			{ID: 1, Name: "Technology", Description: "Articles about technology"},
			{ID: 2, Name: "Life", Description: "Everyday notes"},
		},
		Articles: []Article{
			{
				ID:    1,
				Title: "Welcome to your new blog",
				Content: `# Welcome to your new blog!

This sample article shows what the blog engine can do.

## Features

1. Article management
2. Categories
3. Comments
4. An admin area

## Getting started

1. Open the admin page and register the administrator account
2. Sign in to manage your blog
3. Create articles and categories
4. Moderate comments

Enjoy!`,
				CategoryID: 1,
				Date:       now,
				Views:      0,
				Likes:      0,
				Comments:   []Comment{},
			},
		},
	}
}
