// Package fs implements token storage on the local file system.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultTokenFileName is the credentials file name inside the chatship home.
const DefaultTokenFileName = "credentials.toml"

// TokenFile implements ports.TokenWriter using a TOML credentials file.
// Each Get reads the file fresh, so changes made by other processes are
// picked up on the next call.
type TokenFile struct {
	path string

	// mu serializes writers within this process.
	mu sync.Mutex
}

// NewTokenFile creates a TokenFile backed by path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Path returns the credentials file path.
func (f *TokenFile) Path() string {
	return f.path
}

// Get returns the value stored under key.
// A missing file is the same as an empty store.
func (f *TokenFile) Get(ctx context.Context, key string) (string, bool, error) {
	values, err := readCredentials(f.path)
	if err != nil {
		return "", false, err
	}
	return lookup(values, key)
}

// Set stores value under key, preserving other keys in the file.
func (f *TokenFile) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := readCredentials(f.path)
	if err != nil {
		return err
	}
	values[key] = value
	return writeCredentials(f.path, values)
}

// Delete removes key from the file. Deleting a missing key is not an error.
func (f *TokenFile) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := readCredentials(f.path)
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return writeCredentials(f.path, values)
}

func lookup(values map[string]string, key string) (string, bool, error) {
	v, ok := values[key]
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

func readCredentials(path string) (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	return values, nil
}

// writeCredentials persists values atomically (temp file, then rename).
func writeCredentials(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
