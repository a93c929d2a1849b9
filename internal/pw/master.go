package pw

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"unicode/utf8"
)

const (
	// MinMasterPasswordLength is counted in characters, not bytes.
	MinMasterPasswordLength = 8
	// SaltSize is the length of the random salt in bytes.
	SaltSize = 16
)

// MasterCredential is the salted digest of the master passphrase.
// The passphrase itself is never retained.
type MasterCredential struct {
	Digest [sha256.Size]byte
	Salt   []byte
}

// MasterAuth holds the master credential for the current session only.
// Nothing is persisted: after a restart the passphrase must be set again,
// which draws a new salt.
type MasterAuth struct {
	random     RandomSource
	credential *MasterCredential
}

// NewMasterAuth creates a MasterAuth with no credential set.
func NewMasterAuth(random RandomSource) *MasterAuth {
	return &MasterAuth{random: random}
}

// SetPassword replaces the current credential with a freshly salted digest
// of plaintext. On error the current credential is left unchanged.
func (m *MasterAuth) SetPassword(plaintext string) error {
	if n := utf8.RuneCountInString(plaintext); n < MinMasterPasswordLength {
		return fmt.Errorf("%w: got %d characters, need at least %d", ErrMasterPasswordTooShort, n, MinMasterPasswordLength)
	}

	salt, err := m.random.Bytes(SaltSize)
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	m.credential = &MasterCredential{
		Digest: digest(salt, plaintext),
		Salt:   salt,
	}
	return nil
}

// Verify reports whether plaintext matches the current credential.
// It fails closed with ErrMasterPasswordNotSet when no credential exists.
func (m *MasterAuth) Verify(plaintext string) (bool, error) {
	if m.credential == nil {
		return false, ErrMasterPasswordNotSet
	}
	got := digest(m.credential.Salt, plaintext)
	return subtle.ConstantTimeCompare(got[:], m.credential.Digest[:]) == 1, nil
}

// IsSet reports whether a master password has been set.
func (m *MasterAuth) IsSet() bool {
	return m.credential != nil
}

// digest computes SHA-256(salt || plaintext).
func digest(salt []byte, plaintext string) [sha256.Size]byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(plaintext))
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
