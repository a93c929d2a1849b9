package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PW_HOME: base directory for pw data (default: ~/.local/share/pw)
//   - PW_CONFIG_PATH: config file location (default: ~/.config/pw.toml)
//
// A .env file in the base directory, if present, is loaded before the config
// path is resolved. Variables already set in the environment win.
func GetDefaults() (map[string]string, error) {
	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	if err := loadDotEnv(filepath.Join(baseDir, ".env")); err != nil {
		return nil, err
	}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// loadDotEnv loads path into the process environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// getConfigPath returns the config file path, checking PW_CONFIG_PATH env var first,
// then falling back to the default ~/.config/pw.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PW_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "pw.toml"), nil
}

// getBaseDir returns the base directory for pw data, checking PW_HOME env var first,
// then falling back to the XDG default ~/.local/share/pw.
func getBaseDir() (string, error) {
	if path := os.Getenv("PW_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "pw"), nil
}
