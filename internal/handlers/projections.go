// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"sort"

	"inkpress/internal/models"
	"inkpress/internal/textutil"
)

// summaryLength is the character budget for article summaries.
const summaryLength = 100

// sortByDateDesc orders articles newest-first. Dates are ISO 8601 strings,
// so lexicographic order is chronological order.
func sortByDateDesc(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
}

// listProjection fills the response-only fields for an article in a list:
// summary, formatted date, and the embedded category when it resolves.
func listProjection(article models.Article, categories map[int]models.Category) models.Article {
	article.Summary = textutil.TruncateText(article.Content, summaryLength)
	article.FormattedDate = textutil.FormatDatetime(article.Date)
	if cat, ok := categories[article.CategoryID]; ok {
		c := cat
		article.Category = &c
	}
	return article
}

// categoryIndex maps category IDs to values for projection lookups.
func categoryIndex(categories []models.Category) map[int]models.Category {
	byID := make(map[int]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return byID
}

// categoriesWithCounts recomputes article_count for every category from
// the authoritative article collection and returns the categories sorted
// by that count, descending. Stored counts are never trusted.
func categoriesWithCounts(data *models.BlogData) []models.Category {
	counts := make(map[int]int)
	for _, a := range data.Articles {
		counts[a.CategoryID]++
	}

	result := make([]models.Category, len(data.Categories))
	copy(result, data.Categories)
	for i := range result {
		result[i].ArticleCount = counts[result[i].ID]
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ArticleCount > result[j].ArticleCount
	})
	return result
}
