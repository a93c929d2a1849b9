package ledger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pw-go/internal/pw"
)

func newTestFileLedger(t *testing.T) *FileLedger {
	t.Helper()
	return NewFileLedger(filepath.Join(t.TempDir(), "data", "passwords.txt"))
}

func TestFileLedger_MissingFile(t *testing.T) {
	l := newTestFileLedger(t)

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Entries() = %d entries, want 0", len(entries))
	}

	n, err := l.Count()
	if err != nil || n != 0 {
		t.Errorf("Count() = %d, %v; want 0, nil", n, err)
	}
}

func TestFileLedger_AppendEntries(t *testing.T) {
	l := newTestFileLedger(t)

	records := []pw.CredentialRecord{
		{Ciphertext: []byte("first"), CreatedAt: time.Unix(1700000000, 0)},
		{Ciphertext: []byte{0xfb, 0xff, 0xfe, 0x3a}, CreatedAt: time.Unix(1700000100, 0)},
	}
	for _, r := range records {
		if err := l.Append(r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() = %d entries, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Err != nil {
			t.Errorf("entry %d Err = %v", i, e.Err)
		}
		if e.Line != i+1 {
			t.Errorf("entry %d Line = %d, want %d", i, e.Line, i+1)
		}
		if !bytes.Equal(e.Record.Ciphertext, records[i].Ciphertext) {
			t.Errorf("entry %d Ciphertext = %x, want %x", i, e.Record.Ciphertext, records[i].Ciphertext)
		}
		if !e.Record.CreatedAt.Equal(records[i].CreatedAt) {
			t.Errorf("entry %d CreatedAt = %v, want %v", i, e.Record.CreatedAt, records[i].CreatedAt)
		}
	}
}

func TestFileLedger_FileFormat(t *testing.T) {
	l := newTestFileLedger(t)

	if err := l.Append(pw.CredentialRecord{Ciphertext: []byte("abc"), CreatedAt: time.Unix(1700000000, 0)}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "YWJj:1700000000\n"; got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}

	info, err := os.Stat(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("ledger mode = %o, want 600", perm)
	}
}

func TestFileLedger_ParsesHandWrittenLines(t *testing.T) {
	l := newTestFileLedger(t)
	content := strings.Join([]string{
		"YWJj:1700000000",
		"",
		"ZGVm:1700000000.5",
		"no-separator",
		"!!!:1700000000",
		"YWJj:yesterday",
		"   ",
		"Z2hp:1700000300",
	}, "\n") + "\n"
	if err := os.MkdirAll(filepath.Dir(l.Path()), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.Path(), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	tests := []struct {
		line       int
		ciphertext string
		createdAt  time.Time
		malformed  bool
	}{
		{line: 1, ciphertext: "abc", createdAt: time.Unix(1700000000, 0)},
		{line: 3, ciphertext: "def", createdAt: time.Unix(1700000000, 500000000)},
		{line: 4, malformed: true},
		{line: 5, malformed: true},
		{line: 6, malformed: true},
		{line: 8, ciphertext: "ghi", createdAt: time.Unix(1700000300, 0)},
	}
	if len(entries) != len(tests) {
		t.Fatalf("Entries() = %d entries, want %d", len(entries), len(tests))
	}

	for i, tt := range tests {
		e := entries[i]
		if e.Line != tt.line {
			t.Errorf("entry %d Line = %d, want %d", i, e.Line, tt.line)
		}
		if tt.malformed {
			if !errors.Is(e.Err, pw.ErrMalformedRecord) {
				t.Errorf("line %d Err = %v, want ErrMalformedRecord", tt.line, e.Err)
			}
			continue
		}
		if e.Err != nil {
			t.Errorf("line %d Err = %v", tt.line, e.Err)
			continue
		}
		if string(e.Record.Ciphertext) != tt.ciphertext {
			t.Errorf("line %d Ciphertext = %q, want %q", tt.line, e.Record.Ciphertext, tt.ciphertext)
		}
		if !e.Record.CreatedAt.Equal(tt.createdAt) {
			t.Errorf("line %d CreatedAt = %v, want %v", tt.line, e.Record.CreatedAt, tt.createdAt)
		}
	}

	n, err := l.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 6 {
		t.Errorf("Count() = %d, want 6", n)
	}
}

func TestMemoryLedger(t *testing.T) {
	l := NewMemoryLedger()

	ciphertext := []byte("secret")
	if err := l.Append(pw.CredentialRecord{Ciphertext: ciphertext, CreatedAt: time.Unix(1700000000, 0)}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	ciphertext[0] = 'X'

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Entries() = %d entries, want 1", len(entries))
	}
	if string(entries[0].Record.Ciphertext) != "secret" {
		t.Errorf("stored ciphertext changed with caller's slice: %q", entries[0].Record.Ciphertext)
	}
	if entries[0].Line != 1 {
		t.Errorf("Line = %d, want 1", entries[0].Line)
	}

	n, _ := l.Count()
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}
