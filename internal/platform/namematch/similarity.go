package namematch

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// DefaultMatchThreshold is the normalized-similarity bar a fuzzy candidate
// must clear to be accepted as a match. Empirically chosen; override via
// config rather than editing here.
const DefaultMatchThreshold = 0.85

// Similarity returns an edit-distance similarity in [0,1]:
// 1 - levenshtein(a,b)/max(len(a),len(b)). Symmetric, and 1 for equal inputs.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}

	distance := edlib.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// IsLikelyMatch reports whether candidate plausibly names the same team as
// raw: exact match, equal normalized forms, normalized similarity at or above
// threshold, or one normalized form containing the other.
func IsLikelyMatch(raw, candidate string, threshold float64) bool {
	if strings.EqualFold(strings.TrimSpace(raw), strings.TrimSpace(candidate)) {
		return true
	}

	a := Normalize(raw)
	b := Normalize(candidate)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if Similarity(a, b) >= threshold {
		return true
	}

	return strings.Contains(a, b) || strings.Contains(b, a)
}
