package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PHOTORENAME_CONFIG_PATH: config file location (default: $XDG_CONFIG_HOME/photorename/config.json)
//   - PHOTORENAME_HOME: base directory for photorename data (default: ~/.local/share/photorename)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path":  configPath,
		"base_dir":     baseDir,
		"log_dir":      filepath.Join(baseDir, "log"),
		"journal_path": filepath.Join(baseDir, "journal.db"),
	}, nil
}

// getConfigPath returns the config file path, checking PHOTORENAME_CONFIG_PATH
// first, then XDG_CONFIG_HOME, then falling back to ~/.config/photorename/config.json.
func getConfigPath() (string, error) {
	if path := os.Getenv("PHOTORENAME_CONFIG_PATH"); path != "" {
		return path, nil
	}

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "photorename", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "photorename", "config.json"), nil
}

// getBaseDir returns the base directory for photorename data, checking the
// PHOTORENAME_HOME env var first, then falling back to the XDG default
// ~/.local/share/photorename.
func getBaseDir() (string, error) {
	if path := os.Getenv("PHOTORENAME_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "photorename"), nil
}
