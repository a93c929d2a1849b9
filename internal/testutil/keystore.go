package testutil

import (
	"fmt"
	"sync"

	"pw-go/internal/pw"
)

// MemoryKeyStore is a pw.KeyStore held in memory that counts writes.
type MemoryKeyStore struct {
	mu     sync.Mutex
	key    pw.EncryptionKey
	writes int
}

var _ pw.KeyStore = (*MemoryKeyStore)(nil)

// NewMemoryKeyStore creates an empty store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{}
}

func (s *MemoryKeyStore) Load() (pw.EncryptionKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return nil, pw.ErrKeyNotFound
	}
	return append(pw.EncryptionKey(nil), s.key...), nil
}

func (s *MemoryKeyStore) Create(key pw.EncryptionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		return fmt.Errorf("key already exists")
	}
	s.key = append(pw.EncryptionKey(nil), key...)
	s.writes++
	return nil
}

// Writes returns how many times a key was created.
func (s *MemoryKeyStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
