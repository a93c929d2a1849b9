package encryption

import (
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	"pw-go/internal/pw"
)

// AgeEncryptor implements pw.Encryptor using filippo.io/age with an X25519
// identity as the key. The key file holds the identity string
// ("AGE-SECRET-KEY-1..."); records are encrypted to its recipient.
type AgeEncryptor struct{}

var _ pw.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor creates a new AgeEncryptor.
func NewAgeEncryptor() *AgeEncryptor {
	return &AgeEncryptor{}
}

// GenerateKey creates a new X25519 identity and returns it in its text form.
func (e *AgeEncryptor) GenerateKey() (pw.EncryptionKey, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating identity: %w", err)
	}
	return pw.EncryptionKey(identity.String() + "\n"), nil
}

// Encrypt reads plaintext from r and writes age-encrypted ciphertext to w.
func (e *AgeEncryptor) Encrypt(key pw.EncryptionKey, r io.Reader, w io.Writer) error {
	identity, err := parseIdentity(key)
	if err != nil {
		return err
	}

	encWriter, err := age.Encrypt(w, identity.Recipient())
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}

	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Decrypt reads age-encrypted ciphertext from r and writes plaintext to w.
func (e *AgeEncryptor) Decrypt(key pw.EncryptionKey, r io.Reader, w io.Writer) error {
	identity, err := parseIdentity(key)
	if err != nil {
		return err
	}

	decReader, err := age.Decrypt(r, identity)
	if err != nil {
		return fmt.Errorf("creating decrypted reader: %w", err)
	}

	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}

func parseIdentity(key pw.EncryptionKey) (*age.X25519Identity, error) {
	identity, err := age.ParseX25519Identity(strings.TrimSpace(string(key)))
	if err != nil {
		return nil, fmt.Errorf("parsing age identity: %w", err)
	}
	return identity, nil
}
