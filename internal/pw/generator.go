package pw

import "fmt"

// Generate returns a random password of exactly length characters that
// contains at least one character from every class enabled in policy.
//
// One character is drawn from each enabled class, the rest from the union of
// the enabled alphabets, and the result is shuffled with Fisher-Yates so the
// guaranteed characters do not sit at predictable positions.
func Generate(length int, policy CharacterPolicy, random RandomSource) (string, error) {
	if err := policy.Validate(length); err != nil {
		return "", err
	}

	password := make([]byte, 0, length)
	for _, class := range policy.Classes() {
		c, err := pick(class.Alphabet(), random)
		if err != nil {
			return "", fmt.Errorf("drawing %s character: %w", class, err)
		}
		password = append(password, c)
	}

	union := policy.Alphabet()
	for len(password) < length {
		c, err := pick(union, random)
		if err != nil {
			return "", fmt.Errorf("drawing character: %w", err)
		}
		password = append(password, c)
	}

	if err := shuffle(password, random); err != nil {
		return "", fmt.Errorf("shuffling password: %w", err)
	}
	return string(password), nil
}

// pick draws one character uniformly from an ASCII alphabet.
func pick(alphabet string, random RandomSource) (byte, error) {
	i, err := random.Intn(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func shuffle(b []byte, random RandomSource) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := random.Intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
