package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"worktracker/internal/errors"
	"worktracker/internal/logging"
	"worktracker/internal/worklog"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Session  SessionConfig  `yaml:"session" toml:"session"`
	Export   ExportConfig   `yaml:"export" toml:"export"`
	Logging  logging.Config `yaml:"logging" toml:"logging"`
}

type DatabaseConfig struct {
	// Path of the SQLite file, or ":memory:".
	Path string `yaml:"path" toml:"path"`
}

// SessionConfig seeds the details panel on startup.
type SessionConfig struct {
	CompanyName  string  `yaml:"company_name" toml:"company_name"`
	EmployeeName string  `yaml:"employee_name" toml:"employee_name"`
	HourlyRate   float64 `yaml:"hourly_rate" toml:"hourly_rate"`
}

type ExportConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
	// Timezone used for the date and time columns; "Local" or an IANA name.
	Timezone string `yaml:"timezone" toml:"timezone"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join("~", ".worktracker", "worktracker.db"),
		},
		Export: ExportConfig{
			Dir:      ".",
			Timezone: "Local",
		},
		Logging: logging.Config{
			Level:  "info",
			Stderr: "auto",
		},
	}
}

// DefaultPath is ~/.worktracker/config.yaml unless WORKTRACKER_CONFIG is set.
func DefaultPath() string {
	if p := os.Getenv("WORKTRACKER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join("~", ".worktracker", "config.yaml")
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateSession rewrites the session section of the file at path, keeping
// every other setting. Environment overrides are not written back.
func UpdateSession(path string, session SessionConfig) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	cfg.Session = session
	if err := cfg.Validate(); err != nil {
		return err
	}
	return Save(path, cfg)
}

func readFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	path = logging.ExpandPath(path)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	if err == nil {
		if err := unmarshal(path, data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	path = logging.ExpandPath(path)

	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create config directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to write config file").
			WithDetail("path", path)
	}
	return nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) applyEnv() {
	if p := os.Getenv("WORKTRACKER_DB"); p != "" {
		c.Database.Path = p
	}
	if lvl := os.Getenv("WORKTRACKER_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.ConfigInvalid("database.path is empty")
	}
	if c.Session.HourlyRate < 0 {
		return errors.ConfigInvalid("session.hourly_rate must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return errors.ConfigInvalid("unknown export.timezone " + c.Export.Timezone)
	}
	if !slices.Contains(logging.Formats, c.Logging.Format) {
		return errors.ConfigInvalid("unknown logging.format " + c.Logging.Format)
	}
	return nil
}

// DatabasePath is the database path with ~ expanded.
func (c *Config) DatabasePath() string {
	if c.Database.Path == ":memory:" {
		return c.Database.Path
	}
	return logging.ExpandPath(c.Database.Path)
}

// ExportDir is the export directory with ~ expanded.
func (c *Config) ExportDir() string {
	return logging.ExpandPath(c.Export.Dir)
}

// Location resolves export.timezone. Empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Export.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Export.Timezone)
	}
}

// SessionFrom is the inverse of Config.Defaults.
func SessionFrom(d worklog.Defaults) SessionConfig {
	return SessionConfig{
		CompanyName:  d.CompanyName,
		EmployeeName: d.EmployeeName,
		HourlyRate:   d.HourlyRate,
	}
}

// Defaults converts the session section into record defaults.
func (c *Config) Defaults() worklog.Defaults {
	return worklog.Defaults{
		CompanyName:  c.Session.CompanyName,
		EmployeeName: c.Session.EmployeeName,
		HourlyRate:   c.Session.HourlyRate,
	}
}
