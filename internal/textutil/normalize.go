package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var titleFolder = cases.Fold()

// NormalizeTitle canonicalizes a title for comparison: case-folds, removes
// punctuation and symbols, and collapses whitespace runs to single spaces.
// The result is used for matching only, never for display. Empty input
// normalizes to the empty string.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	folded := titleFolder.String(title)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// WordCount reports the number of whitespace-separated words in the
// normalized form of title.
func WordCount(title string) int {
	return len(strings.Fields(NormalizeTitle(title)))
}
