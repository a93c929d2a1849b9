package pw

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomSource supplies the randomness for password generation and salts.
// Production code must use CryptoRandom; tests inject deterministic sources.
type RandomSource interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) (int, error)
	// Bytes returns n random bytes.
	Bytes(n int) ([]byte, error)
}

// CryptoRandom draws from crypto/rand.
type CryptoRandom struct{}

func (CryptoRandom) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range: %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random integer: %w", err)
	}
	return int(v.Int64()), nil
}

func (CryptoRandom) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return b, nil
}
