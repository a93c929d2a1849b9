package pw

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ExpiredWarning reports a stored password older than the expiry period.
// The record stays in the ledger; it is only left out of the results.
type ExpiredWarning struct {
	Line      int
	CreatedAt time.Time
	Age       time.Duration
}

func (w ExpiredWarning) String() string {
	return fmt.Sprintf("password %d has expired (stored %s) and should be updated", w.Line, w.CreatedAt.Format("2006-01-02"))
}

// LoadResult is the outcome of reading the ledger.
type LoadResult struct {
	Passwords []string
	Expired   []ExpiredWarning
	Errors    []*RecordError
}

// EnsureKey returns the encryption key, creating and persisting one on first
// use. The key is cached, so later calls touch neither the key store nor
// the disk.
func (s *CredentialService) EnsureKey() (EncryptionKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureKey()
}

func (s *CredentialService) ensureKey() (EncryptionKey, error) {
	if s.key != nil {
		return s.key, nil
	}

	key, err := s.keys.Load()
	if errors.Is(err, ErrKeyNotFound) {
		key, err = s.encryptor.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("generating encryption key: %w", err)
		}
		if err := s.keys.Create(key); err != nil {
			return nil, fmt.Errorf("saving encryption key: %w", err)
		}
		s.logger.Info("encryption key created")
	} else if err != nil {
		return nil, fmt.Errorf("loading encryption key: %w", err)
	}

	s.key = key
	return key, nil
}

// StoreCredential encrypts password and appends it to the ledger with the
// current time. Every failure wraps ErrEncryption.
func (s *CredentialService) StoreCredential(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(password)
}

func (s *CredentialService) store(password string) error {
	key, err := s.ensureKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	var ciphertext bytes.Buffer
	if err := s.encryptor.Encrypt(key, strings.NewReader(password), &ciphertext); err != nil {
		return fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	record := CredentialRecord{
		Ciphertext: ciphertext.Bytes(),
		CreatedAt:  time.Unix(s.clock.Now().Unix(), 0),
	}
	if err := s.ledger.Append(record); err != nil {
		return fmt.Errorf("%w: appending credential: %w", ErrEncryption, err)
	}

	s.logger.Info("credential stored", "created_at", record.CreatedAt.Unix())
	return nil
}

// LoadCredentials decrypts every stored password that has not expired.
// Expired records produce a warning and are skipped without being
// decrypted. Malformed or undecryptable records are reported individually
// and do not stop the load. Only a failure to obtain the key or read the
// ledger returns an error.
func (s *CredentialService) LoadCredentials() (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *CredentialService) load() (*LoadResult, error) {
	key, err := s.ensureKey()
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.Entries()
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	now := s.clock.Now()
	result := &LoadResult{}
	for _, entry := range entries {
		if entry.Err != nil {
			s.logger.Warn("skipping malformed credential", "line", entry.Line, "error", entry.Err)
			result.Errors = append(result.Errors, &RecordError{Line: entry.Line, Err: entry.Err})
			continue
		}

		age := now.Sub(entry.Record.CreatedAt)
		if age > s.opts.Expiry {
			s.logger.Warn("password expired", "line", entry.Line, "created_at", entry.Record.CreatedAt.Unix())
			result.Expired = append(result.Expired, ExpiredWarning{
				Line:      entry.Line,
				CreatedAt: entry.Record.CreatedAt,
				Age:       age,
			})
			continue
		}

		var plaintext bytes.Buffer
		if err := s.encryptor.Decrypt(key, bytes.NewReader(entry.Record.Ciphertext), &plaintext); err != nil {
			s.logger.Error("decrypting credential", "line", entry.Line, "error", err)
			result.Errors = append(result.Errors, &RecordError{
				Line: entry.Line,
				Err:  fmt.Errorf("%w: %w", ErrDecryption, err),
			})
			continue
		}
		result.Passwords = append(result.Passwords, plaintext.String())
	}

	s.logger.Debug("credentials loaded", "records", len(entries), "expired", len(result.Expired), "errors", len(result.Errors))
	return result, nil
}
