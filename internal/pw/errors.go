package pw

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy is returned when no character class is enabled or the
	// requested length cannot hold one character from every enabled class.
	ErrInvalidPolicy = errors.New("invalid character policy")

	// ErrMasterPasswordTooShort is returned by SetMasterPassword for
	// passphrases shorter than MinMasterPasswordLength.
	ErrMasterPasswordTooShort = errors.New("master password too short")

	// ErrMasterPasswordNotSet is returned when verification is attempted
	// before a master password was set in this session.
	ErrMasterPasswordNotSet = errors.New("master password not set")

	// ErrMasterPasswordMismatch is returned by UnlockCredentials for a wrong passphrase.
	ErrMasterPasswordMismatch = errors.New("incorrect master password")

	ErrEncryption      = errors.New("encryption failed")
	ErrDecryption      = errors.New("decryption failed")
	ErrMalformedRecord = errors.New("malformed credential record")

	// ErrKeyNotFound is returned by a KeyStore that has no key yet.
	// CredentialService treats it as a signal to generate one.
	ErrKeyNotFound = errors.New("encryption key not found")
)

// RecordError reports a single credential record that could not be loaded.
// Line is the 1-based position of the record in the ledger.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
