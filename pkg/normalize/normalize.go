// Copyright (c) 2026 Clipstream. All rights reserved.

// Package normalize canonicalizes user-supplied identity strings.
//
// # Usage
//
// Usernames and emails are unique keys in the account store, so every write
// path must fold them to a single canonical form ("AB" and "ab" are the same
// account). This package handles Unicode normalization, trimming, and case
// folding in one place.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Username converts a raw handle into its canonical stored form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFKC (folds compatibility variants: ﬁ → fi, full-width → ASCII).
// 2. Trims surrounding whitespace.
// 3. Converts to lowercase.
func Username(raw string) string {
	canonical := norm.NFKC.String(raw)
	canonical = strings.TrimSpace(canonical)
	return strings.ToLower(canonical)
}

// Email converts a raw email address into its canonical stored form.
//
// The whole address is lowercased; Clipstream treats the local part as
// case-insensitive, matching the behavior of every mainstream provider.
func Email(raw string) string {
	canonical := norm.NFKC.String(raw)
	canonical = strings.TrimSpace(canonical)
	return strings.ToLower(canonical)
}

// FullName trims a display name without altering its casing.
func FullName(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(raw))
}
