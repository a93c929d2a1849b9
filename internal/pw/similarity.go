package pw

import "github.com/pmezard/go-difflib/difflib"

// DefaultSimilarityThreshold is the ratio above which two passwords count as
// near-duplicates.
const DefaultSimilarityThreshold = 0.8

// SimilarityRatio returns 2*M/T where M is the number of characters in the
// matching blocks of a and b and T is their combined length. Two empty
// strings have ratio 1.
func SimilarityRatio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// IsSimilar reports whether candidate's ratio against any history entry is
// strictly greater than threshold.
func IsSimilar(candidate string, history []string, threshold float64) bool {
	for _, previous := range history {
		if SimilarityRatio(candidate, previous) > threshold {
			return true
		}
	}
	return false
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
