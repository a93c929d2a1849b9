package pw

import "io"

// EncryptionKey is the symmetric key material stored in the key file.
// Its format is defined by the Encryptor that generated it.
type EncryptionKey []byte

// Encryptor seals and opens individual credential records with an
// authenticated symmetric scheme.
type Encryptor interface {
	// GenerateKey returns fresh key material, in the exact form that is
	// written to the key file.
	GenerateKey() (EncryptionKey, error)

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(key EncryptionKey, r io.Reader, w io.Writer) error

	// Decrypt reads ciphertext from r and writes plaintext to w.
	// Tampered or foreign ciphertext must produce an error.
	Decrypt(key EncryptionKey, r io.Reader, w io.Writer) error
}

// KeyStore persists the encryption key. The key is written once and only
// read afterwards.
type KeyStore interface {
	// Load returns the stored key, or an error wrapping ErrKeyNotFound if
	// none has been created yet.
	Load() (EncryptionKey, error)

	// Create stores key. It must fail rather than overwrite an existing key.
	Create(key EncryptionKey) error
}
