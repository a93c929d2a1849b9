package pw

import "time"

// CredentialRecord is one encrypted password as stored in the ledger.
// CreatedAt is the encryption time with second precision and is never
// changed after the record is written.
type CredentialRecord struct {
	Ciphertext []byte
	CreatedAt  time.Time
}

// LedgerEntry is a record read back from a Ledger. Line is its 1-based
// position. Err is set instead of Record when the entry could not be parsed.
type LedgerEntry struct {
	Line   int
	Record CredentialRecord
	Err    error
}

// Ledger is the append-only credential log.
// Records are never rewritten or removed, including expired ones.
type Ledger interface {
	// Append adds a record at the end of the ledger.
	Append(record CredentialRecord) error

	// Entries returns every record in insertion order. A record that
	// cannot be parsed is returned as an entry with Err set; it does not
	// stop the read.
	Entries() ([]LedgerEntry, error)

	// Count returns the number of records physically present.
	Count() (int, error)

	// Close releases any resources held by the ledger.
	Close() error
}
