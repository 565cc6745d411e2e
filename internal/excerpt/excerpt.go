// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package excerpt derives listing excerpts and reading-time estimates
// from raw post content. Both functions are pure; markdown stripping is
// a best-effort regex pipeline, not a full parser.
package excerpt

import (
	"math"
	"regexp"
	"strings"
)

const (
	// minLength is the shortest excerpt considered usable.
	minLength = 10
	// snippetLength is how much stripped content a derived excerpt keeps.
	snippetLength = 180
	// wordsPerMinute is the reading speed assumed for time estimates.
	wordsPerMinute = 200

	// Fallback is returned when neither the stored excerpt nor the
	// content yields a usable snippet.
	Fallback = "Leia o artigo completo no blog."
)

var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`([^`]*)`")
	image      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	link       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	heading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	blockquote = regexp.MustCompile(`(?m)^>\s?`)
	listMarker = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	emphasis   = regexp.MustCompile(`[*_~]{1,3}`)
	whitespace = regexp.MustCompile(`\s+`)
)

// ReadingTime estimates reading minutes for the given content: the
// whitespace-delimited word count at 200 words per minute, never below 1.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Max(1, math.Ceil(float64(words)/wordsPerMinute)))
}

// Derive returns the excerpt to display for a post. A stored excerpt of
// trimmed length >= 10 wins; otherwise the first 180 characters of the
// markdown-stripped content are used, falling back to a fixed sentence
// when the content yields nothing readable. The result always has at
// least 10 characters, and feeding a derived excerpt back in returns it
// unchanged.
func Derive(excerpt, content string) string {
	if e := strings.TrimSpace(excerpt); len([]rune(e)) >= minLength {
		return e
	}

	stripped := Strip(content)

	snippet := stripped
	if runes := []rune(stripped); len(runes) > snippetLength {
		snippet = strings.TrimSpace(string(runes[:snippetLength]))
	}
	if len([]rune(snippet)) >= minLength {
		return snippet
	}
	if len([]rune(stripped)) >= minLength {
		return stripped
	}
	return Fallback
}

// Strip removes markdown syntax from content: fenced code blocks are
// dropped, inline code and links keep their text, images and heading,
// emphasis, blockquote, and list markers are removed, and all runs of
// whitespace collapse to single spaces.
func Strip(content string) string {
	s := fencedCode.ReplaceAllString(content, " ")
	s = image.ReplaceAllString(s, " ")
	s = link.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = heading.ReplaceAllString(s, "")
	s = blockquote.ReplaceAllString(s, "")
	s = listMarker.ReplaceAllString(s, "")
	s = emphasis.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
