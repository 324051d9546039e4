// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides filename-friendly slug generation from arbitrary
// strings, including hostnames. It names downloaded PDF files after the
// site they were generated from.
package slug

import (
	"regexp"
	"strings"
)

var (
	// separators are characters that delimit words in URLs and hostnames.
	separators = regexp.MustCompile(`[.\s_/|]+`)
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a filename-friendly slug from the given string.
// Examples: "Acme Corp!" → "acme-corp", "www.example.co.uk" → "www-example-co-uk"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
