// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package namekey normalizes human-entered names, such as genre names, for
// display and for matching.
//
// Display form keeps the caller's casing: surrounding whitespace is trimmed,
// inner runs collapse to one space and the result is NFC. The matching key is
// the NFKC case-folded display form, so "Slice of Life", "slice of life" and " SLICE  OF LIFE" all
// resolve to the same row.
package namekey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the display form of name.
func Normalize(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// Key returns the matching key of name. Two names with equal keys denote the
// same entity.
func Key(name string) string {
	return cases.Fold().String(norm.NFKC.String(Normalize(name)))
}

// Dedupe keeps the first spelling of every distinct key, in input order, and
// drops names that are blank after normalization.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		display := Normalize(name)
		if display == "" {
			continue
		}

		key := Key(display)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, display)
	}

	return result
}
