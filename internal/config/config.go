package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Config represents the main configuration for pw.
// Fields tagged with env can be overridden by environment variables; see ApplyEnv.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir" env:"PW_LOG_DIR"`
	Encryption EncryptionConfig `toml:"encryption"`
	Ledger     LedgerConfig     `toml:"ledger"`
	Generator  GeneratorConfig  `toml:"generator"`
	Policy     PolicyConfig     `toml:"policy"`
}

// EncryptionConfig selects the record cipher and the key file it uses.
type EncryptionConfig struct {
	Type    string `toml:"type" env:"PW_ENCRYPTION_TYPE"` // "xchacha" (default), "age" or "test"
	KeyPath string `toml:"key_path" env:"PW_KEY_PATH"`
}

// LedgerConfig represents configuration for the credential log.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type LedgerConfig struct {
	Type string `toml:"type" env:"PW_LEDGER_TYPE"`           // "file" (default), "sqlite" or "memory"
	Path string `toml:"path,omitempty" env:"PW_LEDGER_PATH"` // text file or SQLite database; unused for memory
}

// GeneratorConfig bounds the lengths accepted from the command line.
type GeneratorConfig struct {
	DefaultLength int `toml:"default_length"`
	MinLength     int `toml:"min_length"`
	MaxLength     int `toml:"max_length"`
}

// PolicyConfig holds the similarity and expiry rules.
type PolicyConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold" env:"PW_SIMILARITY_THRESHOLD"`
	ExpiryDays          int     `toml:"expiry_days" env:"PW_EXPIRY_DAYS"`
}

// Expiry returns the expiry period as a duration.
func (p PolicyConfig) Expiry() time.Duration {
	return time.Duration(p.ExpiryDays) * 24 * time.Hour
}

const (
	defaultLength              = 16
	defaultMinLength           = 8
	defaultMaxLength           = 128
	defaultSimilarityThreshold = 0.8
	defaultExpiryDays          = 30
)

// NewConfig creates a new Config rooted at baseDir with default paths and rules.
func NewConfig(baseDir string) *Config {
	cfg := &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Encryption: EncryptionConfig{
			Type:    "xchacha",
			KeyPath: filepath.Join(baseDir, "keys", "pw.key"),
		},
		Ledger: LedgerConfig{
			Type: "file",
			Path: filepath.Join(baseDir, "passwords.txt"),
		},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills the log directory and zero-valued generator and policy
// settings, so a config file only needs to mention what it changes.
func (c *Config) applyDefaults() {
	if c.LogDir == "" && c.BaseDir != "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if c.Generator.DefaultLength == 0 {
		c.Generator.DefaultLength = defaultLength
	}
	if c.Generator.MinLength == 0 {
		c.Generator.MinLength = defaultMinLength
	}
	if c.Generator.MaxLength == 0 {
		c.Generator.MaxLength = defaultMaxLength
	}
	if c.Policy.SimilarityThreshold == 0 {
		c.Policy.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Policy.ExpiryDays == 0 {
		c.Policy.ExpiryDays = defaultExpiryDays
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Encryption.Type {
	case "", "xchacha", "age", "test":
	default:
		return fmt.Errorf("unknown encryption type: %q", c.Encryption.Type)
	}
	if c.Encryption.KeyPath == "" {
		return fmt.Errorf("encryption key_path must be set")
	}

	switch c.Ledger.Type {
	case "", "file", "sqlite":
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger path must be set for type %q", c.Ledger.Type)
		}
	case "memory":
	default:
		return fmt.Errorf("unknown ledger type: %q", c.Ledger.Type)
	}

	g := c.Generator
	if g.MinLength < 1 || g.MinLength > g.MaxLength {
		return fmt.Errorf("invalid generator length bounds: min %d, max %d", g.MinLength, g.MaxLength)
	}
	if g.DefaultLength < g.MinLength || g.DefaultLength > g.MaxLength {
		return fmt.Errorf("default_length %d outside [%d, %d]", g.DefaultLength, g.MinLength, g.MaxLength)
	}

	if c.Policy.SimilarityThreshold <= 0 || c.Policy.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.Policy.SimilarityThreshold)
	}
	if c.Policy.ExpiryDays < 1 {
		return fmt.Errorf("expiry_days must be positive, got %d", c.Policy.ExpiryDays)
	}
	return nil
}

// ApplyEnv overrides tagged fields from the environment. Unset variables
// leave the current values in place.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path, fills defaults,
// applies environment overrides and validates the result.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
