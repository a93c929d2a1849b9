package encryption

import (
	"bytes"
	"fmt"
	"io"

	"pw-go/internal/pw"
)

// testHeader is prepended to data by TestEncryptor so that stored records
// differ from their plaintext while staying deterministic.
var testHeader = []byte("PWENC\x00\x00\x00")

// testKey is what TestEncryptor.GenerateKey returns.
var testKey = pw.EncryptionKey("test-key-0123456789abcdef0123456")

// TestEncryptor is a deterministic encryptor for tests. It ignores the key,
// prepends a fixed header on encryption and strips it on decryption.
type TestEncryptor struct{}

var _ pw.Encryptor = (*TestEncryptor)(nil)

// NewTestEncryptor creates a new TestEncryptor.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) GenerateKey() (pw.EncryptionKey, error) {
	return append(pw.EncryptionKey(nil), testKey...), nil
}

func (e *TestEncryptor) Encrypt(_ pw.EncryptionKey, r io.Reader, w io.Writer) error {
	if _, err := w.Write(testHeader); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Decrypt(_ pw.EncryptionKey, r io.Reader, w io.Writer) error {
	header := make([]byte, len(testHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !bytes.Equal(header, testHeader) {
		return fmt.Errorf("invalid test encryption header")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
