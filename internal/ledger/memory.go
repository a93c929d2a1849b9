package ledger

import (
	"sync"

	"pw-go/internal/pw"
)

// MemoryLedger keeps records in memory. It is useful for tests and for
// sessions that should leave nothing on disk. Safe for concurrent use.
type MemoryLedger struct {
	records []pw.CredentialRecord
	mu      sync.RWMutex
}

var _ pw.Ledger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Append stores a copy of record.
func (m *MemoryLedger) Append(record pw.CredentialRecord) error {
	record.Ciphertext = append([]byte(nil), record.Ciphertext...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

// Entries returns copies of all records in insertion order.
func (m *MemoryLedger) Entries() ([]pw.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]pw.LedgerEntry, 0, len(m.records))
	for i, r := range m.records {
		r.Ciphertext = append([]byte(nil), r.Ciphertext...)
		entries = append(entries, pw.LedgerEntry{Line: i + 1, Record: r})
	}
	return entries, nil
}

// Count returns the number of records.
func (m *MemoryLedger) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MemoryLedger) Close() error {
	return nil
}
