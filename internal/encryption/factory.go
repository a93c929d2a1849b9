package encryption

import (
	"fmt"

	"pw-go/internal/config"
	"pw-go/internal/pw"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (pw.Encryptor, error) {
	switch cfg.Type {
	case "xchacha", "":
		return NewXChaChaEncryptor(), nil
	case "age":
		return NewAgeEncryptor(), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}

// NewKeyStoreFromConfig creates the KeyStore holding the configured key.
func NewKeyStoreFromConfig(cfg config.EncryptionConfig) pw.KeyStore {
	return NewFileKeyStore(cfg.KeyPath)
}
