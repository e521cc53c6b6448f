// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package textutil

import "testing"

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Hello world", "Hello world"},
		{"simple tags stripped", "<p>Hello</p>", "Hello"},
		{"script text survives", "<p>Hello <script>alert(1)</script></p>", "Hello alert(1)"},
		{"attributes removed with tag", `<a href="https://x.test">link</a>`, "link"},
		{"empty string", "", ""},
		{"unclosed bracket passes through", "a < b", "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeHTML(tt.input); got != tt.want {
				t.Errorf("SanitizeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"short text unchanged", "Hello", 100, "Hello"},
		{"exact length unchanged", "Hello", 5, "Hello"},
		{"breaks at last word boundary", "This is a very long text", 10, "This is..."},
		{"no space keeps whole cut", "abcdefghij", 5, "abcde..."},
		{"mid-word cut drops partial word", "Hello world and more", 14, "Hello world..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.input, tt.length); got != tt.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestFormatDatetime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utc z suffix", "2023-12-21T10:30:00Z", "2023-12-21 10:30:00"},
		{"explicit offset", "2023-12-21T10:30:00+02:00", "2023-12-21 10:30:00"},
		{"no zone", "2023-12-21T10:30:00", "2023-12-21 10:30:00"},
		{"fractional seconds", "2023-12-21T10:30:00.123456Z", "2023-12-21 10:30:00"},
		{"unparsable passes through", "not-a-date", "not-a-date"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDatetime(tt.input); got != tt.want {
				t.Errorf("FormatDatetime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
