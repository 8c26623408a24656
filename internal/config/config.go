// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Catalog configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Session configuration
	Session SessionConfig `toml:"session"`

	// Sync configuration
	Sync SyncConfig `toml:"sync"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"` // Bind address
	Port int    `toml:"port"` // Listen port
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Database file path, empty for default
	AutoMigrate bool   `toml:"auto_migrate"` // Apply migrations on startup
}

// CatalogConfig contains card dataset settings.
type CatalogConfig struct {
	DatasetPath string `toml:"dataset_path"` // External card dataset, empty for bundled
	Watch       bool   `toml:"watch"`        // Reload the dataset on file change
}

// SessionConfig identifies the local user.
type SessionConfig struct {
	UserID      string `toml:"user_id"`      // Empty runs a non-persistent session
	DisplayName string `toml:"display_name"` // Optional
}

// SyncConfig tunes the collection mirror worker.
type SyncConfig struct {
	QueueSize     int     `toml:"queue_size"`      // Pending operation buffer
	RatePerSecond float64 `toml:"rate_per_second"` // Store writes per second
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8585,
		},
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Catalog: CatalogConfig{
			DatasetPath: "",
			Watch:       false,
		},
		Session: SessionConfig{
			UserID: "local",
		},
		Sync: SyncConfig{
			QueueSize:     256,
			RatePerSecond: 20,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configDir returns the application data directory, creating it if needed.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".lorcana-companion")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDatabasePath returns the database location used when the config
// leaves it empty.
func DefaultDatabasePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "companion.db"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Sync.QueueSize < 0 {
		return fmt.Errorf("sync queue size cannot be negative: %d", c.Sync.QueueSize)
	}
	if c.Sync.RatePerSecond < 0 {
		return fmt.Errorf("sync rate cannot be negative: %g", c.Sync.RatePerSecond)
	}
	if c.Catalog.DatasetPath != "" {
		if _, err := os.Stat(c.Catalog.DatasetPath); err != nil {
			return fmt.Errorf("catalog dataset path: %w", err)
		}
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
