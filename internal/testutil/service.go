package testutil

import (
	"testing"

	"pw-go/internal/database"
	"pw-go/internal/encryption"
	"pw-go/internal/ledger"
	"pw-go/internal/pw"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() pw.Encryptor {
	return encryption.NewTestEncryptor()
}

// NewTestLedger creates an in-memory ledger.
func NewTestLedger() *ledger.MemoryLedger {
	return ledger.NewMemoryLedger()
}

// NewTestSQLiteLedger creates an in-memory SQLite ledger with sequential IDs.
// It is closed when the test completes.
func NewTestSQLiteLedger(t *testing.T) *database.SQLiteLedger {
	t.Helper()

	l, err := database.NewSQLiteLedger(":memory:", NewStubIDGenerator())
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

// TestService bundles a CredentialService with the fakes behind it.
type TestService struct {
	*pw.CredentialService
	Clock  *StubClock
	Keys   *MemoryKeyStore
	Ledger pw.Ledger
}

// NewTestService creates a CredentialService over an in-memory ledger, a
// memory key store, the test encryptor and a FixedClock. Pass a ledger to
// use another backend.
func NewTestService(t *testing.T, l pw.Ledger) *TestService {
	t.Helper()

	if l == nil {
		l = NewTestLedger()
	}
	clock := FixedClock()
	keys := NewMemoryKeyStore()
	svc := pw.NewCredentialService(keys, NewTestEncryptor(), l, pw.NewNopLogger(), clock, pw.CryptoRandom{}, pw.DefaultOptions())

	return &TestService{
		CredentialService: svc,
		Clock:             clock,
		Keys:              keys,
		Ledger:            l,
	}
}
