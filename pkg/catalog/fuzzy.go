package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MinQueryLength is the minimum text query length before any fuzzy matching
// is attempted. Shorter queries match everything: a one-character query says
// almost nothing about intent, and edit-distance scoring on it would be pure
// noise.
const MinQueryLength = 2

// fuzzyTolerance is the maximum normalized edit distance (distance divided by
// the longer string length) still considered a match. 0.3 permits one typo in
// a four-letter word.
const fuzzyTolerance = 0.3

// Field weights, strictly decreasing in the order the index consults them.
const (
	weightDisplayName  = 12.0
	weightName         = 11.0
	weightTags         = 10.0
	weightAliases      = 9.0
	weightDescription  = 8.0
	weightUsage        = 7.0
	weightBrandName    = 6.0
	weightBrandTags    = 5.0
	weightBrandAliases = 4.0
	weightType         = 3.0
	weightID           = 2.0
	weightBrandID      = 1.0
)

// matchText scores how well query matches text, in [0, 1]. An exact
// substring hit scores 1; otherwise the best per-word normalized
// edit-distance similarity within tolerance counts. Matching is
// case-insensitive.
func matchText(query, text string) float64 {
	if text == "" {
		return 0
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	if strings.Contains(t, q) {
		return 1
	}

	best := 0.0
	for _, word := range strings.FieldsFunc(t, isWordBoundary) {
		if sim := similarity(q, word); sim > best {
			best = sim
		}
	}
	return best
}

// similarity converts edit distance into a score in [0, 1], returning 0 when
// the distance exceeds the tolerance.
func similarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	norm := float64(dist) / float64(longest)
	if norm > fuzzyTolerance {
		return 0
	}
	return 1 - norm
}

func isWordBoundary(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '/' || r == '.'
}

// matchList scores query against each value in values and keeps the best.
func matchList(query string, values []string) float64 {
	best := 0.0
	for _, v := range values {
		if s := matchText(query, v); s > best {
			best = s
		}
	}
	return best
}
