package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"pw-go/internal/pw"
)

// XChaChaEncryptor implements pw.Encryptor with XChaCha20-Poly1305 and a
// 32-byte symmetric key. Each record gets a fresh random nonce, which is
// stored in front of the sealed data.
type XChaChaEncryptor struct{}

var _ pw.Encryptor = (*XChaChaEncryptor)(nil)

// NewXChaChaEncryptor creates a new XChaChaEncryptor.
func NewXChaChaEncryptor() *XChaChaEncryptor {
	return &XChaChaEncryptor{}
}

// GenerateKey returns chacha20poly1305.KeySize random bytes.
func (e *XChaChaEncryptor) GenerateKey() (pw.EncryptionKey, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("reading random key: %w", err)
	}
	return key, nil
}

// Encrypt reads plaintext from r and writes nonce||ciphertext to w.
func (e *XChaChaEncryptor) Encrypt(key pw.EncryptionKey, r io.Reader, w io.Writer) error {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading plaintext: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("reading nonce: %w", err)
	}

	if _, err := w.Write(aead.Seal(nonce, nonce, plaintext, nil)); err != nil {
		return fmt.Errorf("writing ciphertext: %w", err)
	}
	return nil
}

// Decrypt reads nonce||ciphertext from r and writes the plaintext to w. A
// wrong key or tampered data fails authentication.
func (e *XChaChaEncryptor) Decrypt(key pw.EncryptionKey, r io.Reader, w io.Writer) error {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading ciphertext: %w", err)
	}
	if len(data) < aead.NonceSize()+aead.Overhead() {
		return fmt.Errorf("ciphertext too short: %d bytes", len(data))
	}

	nonce, sealed := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return fmt.Errorf("authenticating ciphertext: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return fmt.Errorf("writing plaintext: %w", err)
	}
	return nil
}
