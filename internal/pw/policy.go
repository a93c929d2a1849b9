package pw

import "fmt"

// Character class alphabets. The special set is a fixed literal so generated
// passwords do not depend on locale.
const (
	LowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz"
	UppercaseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitAlphabet     = "0123456789"
	SpecialAlphabet   = "!@#$%^&*()?|[]~`"
)

// CharacterClass identifies one of the alphabets a password may draw from.
type CharacterClass int

const (
	Lowercase CharacterClass = iota
	Uppercase
	Digit
	Special
)

func (c CharacterClass) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return fmt.Sprintf("CharacterClass(%d)", int(c))
	}
}

// Alphabet returns the characters belonging to the class.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Lowercase:
		return LowercaseAlphabet
	case Uppercase:
		return UppercaseAlphabet
	case Digit:
		return DigitAlphabet
	case Special:
		return SpecialAlphabet
	default:
		return ""
	}
}

// CharacterPolicy selects which character classes participate in generation.
// Every enabled class is guaranteed at least one character in the output.
type CharacterPolicy struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Special   bool
}

// DefaultPolicy enables all four classes.
func DefaultPolicy() CharacterPolicy {
	return CharacterPolicy{Lowercase: true, Uppercase: true, Digits: true, Special: true}
}

// Classes returns the enabled classes in a fixed order:
// lowercase, uppercase, digit, special.
func (p CharacterPolicy) Classes() []CharacterClass {
	var classes []CharacterClass
	if p.Lowercase {
		classes = append(classes, Lowercase)
	}
	if p.Uppercase {
		classes = append(classes, Uppercase)
	}
	if p.Digits {
		classes = append(classes, Digit)
	}
	if p.Special {
		classes = append(classes, Special)
	}
	return classes
}

// Alphabet returns the union of the enabled alphabets.
func (p CharacterPolicy) Alphabet() string {
	var union string
	for _, c := range p.Classes() {
		union += c.Alphabet()
	}
	return union
}

// Validate checks that the policy can produce a password of the given length.
func (p CharacterPolicy) Validate(length int) error {
	k := len(p.Classes())
	if k == 0 {
		return fmt.Errorf("%w: at least one character class must be selected", ErrInvalidPolicy)
	}
	if length < k {
		return fmt.Errorf("%w: length %d is shorter than the %d selected character classes", ErrInvalidPolicy, length, k)
	}
	return nil
}
