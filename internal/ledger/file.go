package ledger

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"pw-go/internal/pw"
)

// maxLineSize bounds a single record line; scanner lines above it fail the read.
const maxLineSize = 1 << 20

// FileLedger stores one record per line as
//
//	<base64url ciphertext>:<unix seconds>
//
// The file is only ever appended to. Blank lines are ignored and lines that
// cannot be parsed are reported per entry.
type FileLedger struct {
	path string
	mu   sync.Mutex
}

var _ pw.Ledger = (*FileLedger)(nil)

// NewFileLedger creates a FileLedger backed by path. The file is created on
// the first Append.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Path returns the ledger file location.
func (l *FileLedger) Path() string {
	return l.path
}

// Append writes record as a new line.
func (l *FileLedger) Append(record pw.CredentialRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}

	if _, err := f.WriteString(formatLine(record)); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}
	return nil
}

// Entries parses every non-blank line. A missing file has no entries.
func (l *FileLedger) Entries() ([]pw.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []pw.LedgerEntry
	err := l.scan(func(line int, text string) {
		record, err := parseLine(text)
		entries = append(entries, pw.LedgerEntry{Line: line, Record: record, Err: err})
	})
	return entries, err
}

// Count returns the number of non-blank lines.
func (l *FileLedger) Count() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	err := l.scan(func(int, string) { n++ })
	return n, err
}

// Close is a no-op; the file is opened per operation.
func (l *FileLedger) Close() error {
	return nil
}

func (l *FileLedger) scan(fn func(line int, text string)) error {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fn(line, text)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	return nil
}

func formatLine(record pw.CredentialRecord) string {
	return base64.URLEncoding.EncodeToString(record.Ciphertext) + ":" + strconv.FormatInt(record.CreatedAt.Unix(), 10) + "\n"
}

// parseLine splits on the first ':'. The timestamp may be an integer or a
// decimal number of seconds.
func parseLine(text string) (pw.CredentialRecord, error) {
	encoded, stamp, ok := strings.Cut(text, ":")
	if !ok {
		return pw.CredentialRecord{}, fmt.Errorf("%w: missing timestamp separator", pw.ErrMalformedRecord)
	}

	ciphertext, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return pw.CredentialRecord{}, fmt.Errorf("%w: ciphertext: %v", pw.ErrMalformedRecord, err)
	}

	createdAt, err := parseTimestamp(stamp)
	if err != nil {
		return pw.CredentialRecord{}, fmt.Errorf("%w: timestamp %q", pw.ErrMalformedRecord, stamp)
	}

	return pw.CredentialRecord{Ciphertext: ciphertext, CreatedAt: createdAt}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	secs, frac := math.Modf(f)
	return time.Unix(int64(secs), int64(frac*1e9)), nil
}
