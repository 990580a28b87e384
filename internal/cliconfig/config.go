package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/chatship/internal/adapters/fs"
	"github.com/bft-labs/chatship/internal/domain"
)

// DefaultServiceURL is the default chat backend.
const DefaultServiceURL = "http://localhost:8000"

// Token store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds CLI configuration for chatship.
type Config struct {
	ServiceURL  string
	HTTPTimeout time.Duration

	TokenStore string
	TokenFile  string
	RedisURL   string

	Output      string
	Concurrency int
	LogLevel    string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: 15 * time.Second,
		TokenStore:  StoreFile,
		TokenFile:   DefaultTokenFilePath(),
		RedisURL:    "redis://localhost:6379/0",
		Output:      "json",
		Concurrency: 4,
		LogLevel:    "info",
	}
}

// DefaultTokenFilePath returns ~/.chatship/credentials.toml, or a relative
// path when the home directory is unknown.
func DefaultTokenFilePath() string {
	if dir := homeDir(); dir != "" {
		return filepath.Join(dir, fs.DefaultTokenFileName)
	}
	return fs.DefaultTokenFileName
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive", domain.ErrInvalidConfig)
	}

	switch c.TokenStore {
	case StoreFile:
		if c.TokenFile == "" {
			return fmt.Errorf("%w: token-file is required for the file store", domain.ErrInvalidConfig)
		}
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: redis-url is required for the redis store", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedStore, c.TokenStore)
	}

	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown output %q", domain.ErrInvalidConfig, c.Output)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", domain.ErrInvalidConfig, err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
