package ledger

import (
	"fmt"

	"pw-go/internal/config"
	"pw-go/internal/database"
	"pw-go/internal/pw"
)

// NewLedgerFromConfig creates a Ledger implementation based on the ledger config type.
func NewLedgerFromConfig(cfg config.LedgerConfig) (pw.Ledger, error) {
	switch cfg.Type {
	case "file", "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file ledger requires path to be set")
		}
		return NewFileLedger(cfg.Path), nil
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite ledger requires path to be set")
		}
		return database.NewSQLiteLedger(cfg.Path, pw.UUIDGenerator{})
	case "memory":
		return NewMemoryLedger(), nil
	default:
		return nil, fmt.Errorf("unknown ledger type: %s", cfg.Type)
	}
}
