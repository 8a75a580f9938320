// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// unsafeFilename matches characters not allowed in artifact filenames.
	unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "The Treaty of Versailles, 1919" → "the-treaty-of-versailles-1919"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename converts a title into a safe filename stem for generated
// artifacts. Unlike Generate it preserves case and replaces every
// non-alphanumeric rune with an underscore, matching the naming of
// previously compiled books.
func Filename(s string) string {
	return unsafeFilename.ReplaceAllString(s, "_")
}
