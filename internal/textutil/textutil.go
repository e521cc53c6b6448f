// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package textutil provides the text helpers shared by the content
// handlers: HTML tag stripping, summary truncation, and display-date
// formatting.
package textutil

import (
	"regexp"
	"strings"
	"time"
)

// tagPattern matches anything between a '<' and the next '>'.
var tagPattern = regexp.MustCompile(`<[^>]*?>`)

// SanitizeHTML removes tag-delimited markup from text and returns the
// plain-text residue. It is a tag stripper, not an encoder: inner text of
// removed tags survives (`<script>alert(1)</script>` becomes `alert(1)`),
// and attribute-based or malformed-tag vectors are not neutralized.
// Callers must not treat the output as XSS-safe HTML.
func SanitizeHTML(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// TruncateText shortens text to at most length characters, breaking at the
// last space inside the limit and appending an ellipsis. Text already
// within the limit is returned unchanged.
func TruncateText(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	cut := strings.TrimRight(string(runes[:length]), " ")
	if idx := strings.LastIndex(cut, " "); idx >= 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// datetimeLayouts are the timestamp shapes FormatDatetime accepts, tried in
// order. They cover RFC 3339 with and without fractional seconds plus the
// zone-less local form.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// FormatDatetime renders an ISO 8601 timestamp as "YYYY-MM-DD HH:MM:SS".
// A trailing "Z" is normalized to a UTC offset before parsing. Input that
// cannot be parsed is returned verbatim rather than erroring, so a bad
// stored date never breaks a response.
func FormatDatetime(value string) string {
	normalized := value
	if strings.HasSuffix(normalized, "Z") {
		normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return value
}
