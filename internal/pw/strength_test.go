package pw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pw-go/internal/pw"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		points   int
		want     pw.Strength
	}{
		{password: "", points: 0, want: pw.StrengthInvalid},
		{password: "aaaa", points: 1, want: pw.StrengthVeryWeak},
		{password: "a", points: 2, want: pw.StrengthWeak},
		{password: "password", points: 2, want: pw.StrengthWeak},
		{password: "aaaaaaaa", points: 2, want: pw.StrengthWeak},
		{password: "Abcdef12!@", points: 6, want: pw.StrengthExcellent},
		{password: "abcdefgh", points: 3, want: pw.StrengthModerate},
		{password: "Abcdefgg", points: 3, want: pw.StrengthModerate},
		{password: "Abcdefgg1", points: 4, want: pw.StrengthStrong},
		{password: "Abcdefg1", points: 5, want: pw.StrengthVeryStrong},
		{password: "Abcdefg1!", points: 6, want: pw.StrengthExcellent},
		{password: "Abcdefghij1!", points: 7, want: pw.StrengthTopTier},
		{password: "Abcdefghijklmm1!", points: 7, want: pw.StrengthTopTier},
		// Every criterion met: eight points has no label.
		{password: "Abcdefghijklmn1!", points: 8, want: pw.StrengthInvalid},
		{password: "ÄÖÜäöü12", points: 5, want: pw.StrengthVeryStrong},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.points, pw.Points(tt.password))
			assert.Equal(t, tt.want, pw.Score(tt.password))
		})
	}
}

func TestScore_SpecialSetIsFixed(t *testing.T) {
	t.Parallel()

	// '-' and '_' are punctuation but not in SpecialAlphabet.
	assert.Equal(t, pw.Points("abc-_"), pw.Points("abcde"))
	assert.Equal(t, pw.Points("abcde")+1, pw.Points("abcd~"))
}
