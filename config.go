package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the full TOML-driven configuration for one database.
type Config struct {
	Source SourceConfig `toml:"source"`
	Backup BackupConfig `toml:"backup"`
}

// SourceConfig identifies the database to back up or restore into.
type SourceConfig struct {
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Database           string `toml:"database"`
	AllowEmptyPassword bool   `toml:"allow_empty_password"`
}

// BackupConfig controls dump batching, rotation, and the run catalog.
type BackupConfig struct {
	BatchSize   int    `toml:"batch_size"`
	Incremental int    `toml:"incremental"` // keep N timestamped backups; 0 disables rotation
	Catalog     string `toml:"catalog"`     // path to the SQLite run catalog; empty disables it
}

const defaultBatchSize = 1000

// loadConfig reads a TOML config file and returns a Config with defaults
// applied and all required fields validated.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{
		Source: SourceConfig{Port: 3306},
		Backup: BackupConfig{BatchSize: defaultBatchSize},
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Source.Host) == "" {
		return &ConfigError{Field: "source.host", Msg: "is required"}
	}
	if c.Source.Port <= 0 || c.Source.Port > 65535 {
		return &ConfigError{Field: "source.port", Msg: fmt.Sprintf("invalid port %d", c.Source.Port)}
	}
	if strings.TrimSpace(c.Source.User) == "" {
		return &ConfigError{Field: "source.user", Msg: "is required"}
	}
	if c.Source.Password == "" && !c.Source.AllowEmptyPassword {
		return &ConfigError{Field: "source.password", Msg: "is required (set allow_empty_password to override)"}
	}
	if strings.TrimSpace(c.Source.Database) == "" {
		return &ConfigError{Field: "source.database", Msg: "is required"}
	}
	if c.Backup.BatchSize <= 0 {
		return &ConfigError{Field: "backup.batch_size", Msg: "must be positive"}
	}
	if c.Backup.Incremental < 0 {
		return &ConfigError{Field: "backup.incremental", Msg: "must not be negative"}
	}
	return nil
}

// Endpoint converts the source section into a connection endpoint.
func (c *Config) Endpoint() Endpoint {
	return Endpoint{
		Host:     c.Source.Host,
		Port:     c.Source.Port,
		User:     c.Source.User,
		Password: c.Source.Password,
		Database: c.Source.Database,
	}
}
