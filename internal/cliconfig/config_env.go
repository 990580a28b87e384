package cliconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnvConfig applies configuration from environment variables (CHATSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", os.Getenv("CHATSHIP_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("token-store", os.Getenv("CHATSHIP_TOKEN_STORE"), &cfg.TokenStore)
	s.setString("token-file", os.Getenv("CHATSHIP_TOKEN_FILE"), &cfg.TokenFile)
	s.setString("redis-url", os.Getenv("CHATSHIP_REDIS_URL"), &cfg.RedisURL)
	s.setString("output", os.Getenv("CHATSHIP_OUTPUT"), &cfg.Output)
	s.setString("log-level", os.Getenv("CHATSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("CHATSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setIntFromString("concurrency", os.Getenv("CHATSHIP_CONCURRENCY"), &cfg.Concurrency); err != nil {
		return err
	}

	return nil
}
