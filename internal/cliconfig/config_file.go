package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ServiceURL  string `toml:"service_url"`
	HTTPTimeout string `toml:"http_timeout"`
	TokenStore  string `toml:"token_store"`
	TokenFile   string `toml:"token_file"`
	RedisURL    string `toml:"redis_url"`
	Output      string `toml:"output"`
	Concurrency int    `toml:"concurrency"`
	LogLevel    string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.chatship/config.toml, or "" if the user home
// directory is not accessible.
func DefaultConfigPath() string {
	if dir := homeDir(); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("token-store", fc.TokenStore, &cfg.TokenStore)
	s.setString("token-file", fc.TokenFile, &cfg.TokenFile)
	s.setString("redis-url", fc.RedisURL, &cfg.RedisURL)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".chatship")
	}
	return ""
}
