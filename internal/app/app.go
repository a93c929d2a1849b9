package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"pw-go/internal/config"
	"pw-go/internal/encryption"
	"pw-go/internal/ledger"
	"pw-go/internal/pw"
)

// ErrLengthOutOfRange is returned by Generate for lengths outside the
// configured generator bounds.
var ErrLengthOutOfRange = errors.New("password length out of range")

// PWApp is the application layer between the CLI and CredentialService.
// It constructs all dependencies from config and owns the ledger and log
// file, which are released by Close.
type PWApp struct {
	cfg     *config.Config
	ledger  pw.Ledger
	service *pw.CredentialService
	op      *Operation
	logger  *slogAdapter
	logFile *os.File
}

// NewPWApp creates a fully wired PWApp from the given config.
// operation names the CLI command being run (e.g. "generate", "shell").
// The caller must call Close when done.
func NewPWApp(cfg *config.Config, operation string) (*PWApp, error) {
	return newPWApp(cfg, operation, os.Stderr)
}

func newPWApp(cfg *config.Config, operation string, console io.Writer) (*PWApp, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	keys := encryption.NewKeyStoreFromConfig(cfg.Encryption)

	l, err := ledger.NewLedgerFromConfig(cfg.Ledger)
	if err != nil {
		return nil, fmt.Errorf("creating ledger: %w", err)
	}

	op := NewOperation(operation)
	logger, logFile, err := newLogger(cfg.LogDir, op.SessionID, console)
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	opts := pw.Options{
		SimilarityThreshold: cfg.Policy.SimilarityThreshold,
		Expiry:              cfg.Policy.Expiry(),
	}
	svc := pw.NewCredentialService(keys, enc, l, adapter, pw.RealClock{}, pw.CryptoRandom{}, opts)

	adapter.Debug("operation started", "operation", op.Name, "ledger", cfg.Ledger.Type, "encryption", cfg.Encryption.Type)

	return &PWApp{
		cfg:     cfg,
		ledger:  l,
		service: svc,
		op:      op,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// Config returns the configuration the app was built from.
func (a *PWApp) Config() *config.Config {
	return a.cfg
}

// Service returns the underlying CredentialService.
func (a *PWApp) Service() *pw.CredentialService {
	return a.service
}

// Generate checks length against the configured bounds, then generates,
// rates and similarity-checks a password. When save is set, an accepted
// password is stored.
func (a *PWApp) Generate(length int, policy pw.CharacterPolicy, save bool) (*pw.GenerateResult, error) {
	g := a.cfg.Generator
	if length < g.MinLength || length > g.MaxLength {
		return nil, a.fail(fmt.Errorf("%w: %d not in [%d, %d]", ErrLengthOutOfRange, length, g.MinLength, g.MaxLength))
	}

	result, err := a.service.NewPassword(pw.GenerateRequest{Length: length, Policy: policy, Save: save})
	if err != nil {
		return nil, a.fail(err)
	}
	return result, nil
}

// SetMasterPassword sets the session's master password.
func (a *PWApp) SetMasterPassword(plaintext string) error {
	return a.fail(a.service.SetMasterPassword(plaintext))
}

// Unlock verifies the master password and loads the stored credentials.
func (a *PWApp) Unlock(master string) (*pw.LoadResult, error) {
	result, err := a.service.UnlockCredentials(master)
	if err != nil {
		return nil, a.fail(err)
	}
	return result, nil
}

// History returns the passwords accepted in this session.
func (a *PWApp) History() []string {
	return a.service.History()
}

// fail marks the operation failed when err is non-nil and returns err.
func (a *PWApp) fail(err error) error {
	if err != nil {
		a.op.Fail()
	}
	return err
}

// Close logs the operation outcome and releases the ledger and log file.
func (a *PWApp) Close() error {
	a.logger.Info("operation finished", "operation", a.op.Name, "status", a.op.Status)

	var firstErr error
	if err := a.ledger.Close(); err != nil {
		firstErr = fmt.Errorf("closing ledger: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
