// ABOUTME: Shared string normalization helpers for the validators
// ABOUTME: Trimming, whitespace stripping, and order-preserving deduplication
package validate

import (
	"strings"
	"unicode"
)

// stripSpaces removes every whitespace rune, including interior ones.
// Phone numbers are compared and stored without spacing.
func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dedupeFold removes case-insensitive duplicates, keeping the first
// occurrence with its original casing.
func dedupeFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// dedupeExact removes exact duplicates, keeping the first occurrence.
func dedupeExact(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// trimAll trims surrounding whitespace from every value and drops the
// ones that end up empty.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
