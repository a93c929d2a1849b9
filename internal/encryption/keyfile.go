package encryption

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pw-go/internal/pw"
)

// FileKeyStore keeps the encryption key in a single file readable only by
// its owner.
type FileKeyStore struct {
	path string
}

var _ pw.KeyStore = (*FileKeyStore)(nil)

// NewFileKeyStore creates a FileKeyStore for the key at path.
func NewFileKeyStore(path string) *FileKeyStore {
	return &FileKeyStore{path: path}
}

// Path returns the key file location.
func (s *FileKeyStore) Path() string {
	return s.path
}

// Load reads the key. A missing file wraps pw.ErrKeyNotFound.
func (s *FileKeyStore) Load() (pw.EncryptionKey, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", pw.ErrKeyNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("key file %s is empty", s.path)
	}
	return data, nil
}

// Create writes key to a new file with mode 0600. It refuses to replace an
// existing key.
func (s *FileKeyStore) Create(key pw.EncryptionKey) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}

	if _, err := f.Write(key); err != nil {
		f.Close()
		return fmt.Errorf("writing key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing key file: %w", err)
	}
	return nil
}
