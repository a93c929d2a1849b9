package pw

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength is the discrete rating assigned by Score.
type Strength string

const (
	StrengthInvalid    Strength = "Invalid"
	StrengthVeryWeak   Strength = "Very Weak"
	StrengthWeak       Strength = "Weak"
	StrengthModerate   Strength = "Moderate"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
	StrengthExcellent  Strength = "Excellent"
	StrengthTopTier    Strength = "Top-tier"
)

// strengthLabels maps points to labels. Eight points is reachable but has no
// entry, so it falls through to StrengthInvalid like zero does.
var strengthLabels = map[int]Strength{
	1: StrengthVeryWeak,
	2: StrengthWeak,
	3: StrengthModerate,
	4: StrengthStrong,
	5: StrengthVeryStrong,
	6: StrengthExcellent,
	7: StrengthTopTier,
}

// Score rates a password by the number of criteria it meets.
func Score(password string) Strength {
	if label, ok := strengthLabels[Points(password)]; ok {
		return label
	}
	return StrengthInvalid
}

// Points counts the criteria met by password, one point each: at least 8,
// 12 and 16 characters; a lowercase letter; an uppercase letter; a digit; a
// character from SpecialAlphabet; and no repeated characters.
func Points(password string) int {
	n := utf8.RuneCountInString(password)
	points := 0

	for _, threshold := range []int{8, 12, 16} {
		if n >= threshold {
			points++
		}
	}
	if strings.IndexFunc(password, unicode.IsLower) >= 0 {
		points++
	}
	if strings.IndexFunc(password, unicode.IsUpper) >= 0 {
		points++
	}
	if strings.IndexFunc(password, unicode.IsDigit) >= 0 {
		points++
	}
	if strings.ContainsAny(password, SpecialAlphabet) {
		points++
	}
	if n > 0 && allDistinct(password) {
		points++
	}
	return points
}

func allDistinct(s string) bool {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		if _, ok := seen[r]; ok {
			return false
		}
		seen[r] = struct{}{}
	}
	return true
}
