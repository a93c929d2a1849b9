package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pw-go/internal/database/migrations"
	"pw-go/internal/pw"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteLedger implements pw.Ledger on a SQLite database. Records are
// returned in insertion order.
type SQLiteLedger struct {
	db   *sql.DB
	ids  pw.IDGenerator
	path string
}

var _ pw.Ledger = (*SQLiteLedger)(nil)

// NewSQLiteLedger opens the database at path, creating it and applying
// migrations as needed. path can be ":memory:".
func NewSQLiteLedger(path string, ids pw.IDGenerator) (*SQLiteLedger, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	if ids == nil {
		ids = pw.UUIDGenerator{}
	}
	return &SQLiteLedger{db: db, ids: ids, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection. The pool is
// limited to one connection so that ":memory:" databases are shared.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// Append inserts a record.
func (l *SQLiteLedger) Append(record pw.CredentialRecord) error {
	_, err := l.db.ExecContext(context.Background(),
		"INSERT INTO credential_records (id, ciphertext, created_at) VALUES (?, ?, ?)",
		l.ids.New(), record.Ciphertext, record.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("inserting credential record: %w", err)
	}
	return nil
}

// Entries returns every record, oldest first. Line is the 1-based position.
func (l *SQLiteLedger) Entries() ([]pw.LedgerEntry, error) {
	rows, err := l.db.QueryContext(context.Background(),
		"SELECT ciphertext, created_at FROM credential_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying credential records: %w", err)
	}
	defer rows.Close()

	var entries []pw.LedgerEntry
	for rows.Next() {
		var (
			ciphertext []byte
			createdAt  int64
		)
		if err := rows.Scan(&ciphertext, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning credential record: %w", err)
		}
		entries = append(entries, pw.LedgerEntry{
			Line: len(entries) + 1,
			Record: pw.CredentialRecord{
				Ciphertext: ciphertext,
				CreatedAt:  time.Unix(createdAt, 0),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credential records: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored records.
func (l *SQLiteLedger) Count() (int, error) {
	var n int
	if err := l.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM credential_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting credential records: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// Path returns the database location.
func (l *SQLiteLedger) Path() string {
	return l.path
}
