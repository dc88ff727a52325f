package textutil

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// SimilarityScore computes an integer closeness in [0, 100] between two
// titles. Both inputs are normalized first. The score is the higher of a
// character-level Levenshtein ratio and a token-order-insensitive ratio
// (words sorted before comparison), so near-identical strings and
// same-words-different-order strings both score well. Equal inputs always
// score 100.
func SimilarityScore(a, b string) int {
	na := NormalizeTitle(a)
	nb := NormalizeTitle(b)
	if na == nb {
		if na == "" {
			return 0
		}
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}
	ratio := levenshteinRatio(na, nb)
	if sorted := levenshteinRatio(sortTokens(na), sortTokens(nb)); sorted > ratio {
		ratio = sorted
	}
	return int(math.Round(ratio * 100))
}

func levenshteinRatio(a, b string) float64 {
	similarity, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(similarity)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
