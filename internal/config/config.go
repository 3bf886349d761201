// Package config loads and saves the ecoplate configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezones without system zoneinfo

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecoplate/internal/swap"
)

// Environment variables that override the configuration file.
const (
	EnvHome       = "ECOPLATE_HOME"
	EnvStore      = "ECOPLATE_STORE"
	EnvLogLevel   = "ECOPLATE_LOG_LEVEL"
	EnvLogFormat  = "ECOPLATE_LOG_FORMAT"
	EnvProjectDir = "ECOPLATE_PROJECT_DIR"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// DefaultTimezone is the timezone used for calendar-day bucketing.
const DefaultTimezone = "Asia/Seoul"

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown config key")

// ErrInvalidValue is returned when a value fails validation.
var ErrInvalidValue = errors.New("invalid config value")

// Config is the ecoplate configuration.
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Store   StoreConfig   `yaml:"store"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProfileConfig identifies the local user.
type ProfileConfig struct {
	UserID            string `yaml:"user_id"`
	Name              string `yaml:"name,omitempty"`
	DietaryPreference string `yaml:"dietary_preference,omitempty"`
	Timezone          string `yaml:"timezone,omitempty"`
}

// StoreConfig locates the data file.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// HomeDir returns the ecoplate home directory: $ECOPLATE_HOME, or
// ~/.ecoplate.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".ecoplate"), nil
}

// DefaultPath returns the path of the global configuration file.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			UserID:            "local",
			DietaryPreference: string(swap.PreferenceOmnivore),
			Timezone:          DefaultTimezone,
		},
		Output:  OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{Level: "warn", Format: "console"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
		}
	}

	cfg.ApplyEnv()
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config file: %w", writeErr)
	}
	return nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: output.default_format %q", ErrInvalidValue, c.Output.DefaultFormat)
	}
	if swap.ParseDietaryPreference(c.Profile.DietaryPreference) == swap.PreferenceUnrecognized {
		return fmt.Errorf("%w: profile.dietary_preference %q", ErrInvalidValue, c.Profile.DietaryPreference)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: profile.timezone %q", ErrInvalidValue, c.Profile.Timezone)
	}
	return nil
}

// Location returns the configured timezone, or UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Profile.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Profile.Timezone)
}

// StorePath returns the data file path, defaulting into the home directory.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data.json"), nil
}

// Keys lists the dotted keys accepted by Get and Set.
func Keys() []string {
	return []string{
		"profile.user_id", "profile.name", "profile.dietary_preference", "profile.timezone",
		"store.path", "output.default_format",
		"logging.level", "logging.format", "logging.file",
	}
}

func (c *Config) field(key string) (*string, error) {
	switch strings.ToLower(key) {
	case "profile.user_id":
		return &c.Profile.UserID, nil
	case "profile.name":
		return &c.Profile.Name, nil
	case "profile.dietary_preference":
		return &c.Profile.DietaryPreference, nil
	case "profile.timezone":
		return &c.Profile.Timezone, nil
	case "store.path":
		return &c.Store.Path, nil
	case "output.default_format":
		return &c.Output.DefaultFormat, nil
	case "logging.level":
		return &c.Logging.Level, nil
	case "logging.format":
		return &c.Logging.Format, nil
	case "logging.file":
		return &c.Logging.File, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Get returns the value of a dotted key.
func (c *Config) Get(key string) (string, error) {
	f, err := c.field(key)
	if err != nil {
		return "", err
	}
	return *f, nil
}

// Set assigns a dotted key and validates the result. On failure the config
// is left unchanged.
func (c *Config) Set(key, value string) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	old := *f
	*f = value
	if validateErr := c.Validate(); validateErr != nil {
		*f = old
		return validateErr
	}
	return nil
}
