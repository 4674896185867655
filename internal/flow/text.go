package flow

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases the input, strips punctuation while keeping
// alphanumerics and the Hebrew block (U+0590-U+05FF), and collapses all
// whitespace runs to single spaces.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r >= 0x0590 && r <= 0x05FF:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeTitle lowercases, trims, and collapses internal whitespace.
// Titles keep their punctuation; only case and spacing are normalized.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsAny reports whether any of the words appears as a substring of
// the lowercased message.
func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
