package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"photorename/internal/rename"
)

// Config represents the persisted user settings.
type Config struct {
	DateFormat       string `json:"date_format"`
	NamingMethod     int    `json:"naming_method"`
	LastOpenedFolder string `json:"last_opened_folder"`
	FirstUse         bool   `json:"first_use"`
}

// NewConfig returns the settings in effect before the user changes anything.
func NewConfig() *Config {
	return &Config{
		DateFormat:   rename.DefaultDateFormat,
		NamingMethod: int(rename.DateOnly),
		FirstUse:     true,
	}
}

// Template converts the stored settings into the domain naming template,
// validating both fields.
func (c *Config) Template() (rename.NamingTemplate, error) {
	method, err := rename.ParseNamingMethod(c.NamingMethod)
	if err != nil {
		return rename.NamingTemplate{}, err
	}
	tpl := rename.NamingTemplate{DateFormat: c.DateFormat, Method: method}
	if err := tpl.Validate(); err != nil {
		return rename.NamingTemplate{}, err
	}
	return tpl, nil
}

// Patch is a partial settings update; nil fields keep their current value.
type Patch struct {
	DateFormat       *string
	NamingMethod     *int
	LastOpenedFolder *string
	FirstUse         *bool
}

// Update applies a patch as a pure transform: the receiver is left
// untouched and the patched value is validated before being returned.
// Persisting the result is the caller's responsibility.
func (c Config) Update(p Patch) (*Config, error) {
	next := c
	if p.DateFormat != nil {
		next.DateFormat = *p.DateFormat
	}
	if p.NamingMethod != nil {
		next.NamingMethod = *p.NamingMethod
	}
	if p.LastOpenedFolder != nil {
		next.LastOpenedFolder = *p.LastOpenedFolder
	}
	if p.FirstUse != nil {
		next.FirstUse = *p.FirstUse
	}

	if _, err := next.Template(); err != nil {
		return nil, err
	}
	return &next, nil
}

// Manager handles reading and writing settings.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
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
	return cfg, nil
}

// WriteToFile writes a Config to the specified file path, creating parent
// directories as needed.
func WriteToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// LoadOrDefault reads the config at path, falling back to defaults when no
// file exists yet. A file that exists but cannot be parsed is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}
