// Package config reads and writes the spg TOML configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for spg.
type Config struct {
	InstallID string          `toml:"install_id"`
	LogDir    string          `toml:"log_dir"`
	Accounts  []AccountConfig `toml:"accounts"`
	Retry     RetryConfig     `toml:"retry"`
}

// AccountConfig configures one Google Photos account in the pool.
// Account order matters: the allocator identifies accounts by their index
// in this list, so reordering entries changes where albums land.
type AccountConfig struct {
	Name             string `toml:"name"`
	CredentialsFile  string `toml:"credentials_file"`
	ClientSecretFile string `toml:"client_secret_file"`
}

// RetryConfig tunes the HTTP retry policy. Zero values mean defaults.
type RetryConfig struct {
	MaxAttempts      int   `toml:"max_attempts"`
	InitialBackoffMs int64 `toml:"initial_backoff_ms"`
	MaxBackoffMs     int64 `toml:"max_backoff_ms"`
}

// NewConfig creates a Config with the provided install ID and default paths
// under baseDir. Accounts are added by hand afterwards.
func NewConfig(installID, baseDir string) *Config {
	return &Config{
		InstallID: installID,
		LogDir:    filepath.Join(baseDir, "log"),
	}
}

// FindAccount returns the account config with the given name.
func (c *Config) FindAccount(name string) (AccountConfig, error) {
	for _, account := range c.Accounts {
		if account.Name == name {
			return account, nil
		}
	}
	return AccountConfig{}, fmt.Errorf("no account named %q in config", name)
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

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
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

// Init initializes a new config file at the specified path. Fails when a
// config file already exists there.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
