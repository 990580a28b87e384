// Package memory provides an in-process token store.
package memory

import (
	"context"
	"sync"
)

// TokenStore implements ports.TokenWriter with a mutex-protected map.
// Contents are lost when the process exits.
type TokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewTokenStore creates a store seeded with the given values.
func NewTokenStore(seed map[string]string) *TokenStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &TokenStore{values: values}
}

// Get returns the value for key. Empty values are reported as absent.
func (s *TokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Set stores value under key.
func (s *TokenStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *TokenStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
