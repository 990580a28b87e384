package ports

import "context"

// TokenStore provides read access to persisted client credentials.
type TokenStore interface {
	// Get returns the value stored under key.
	// ok is false when nothing (or an empty string) is stored.
	// An error is returned only for actual storage failures.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// TokenWriter is implemented by stores the CLI can modify.
// The sender never writes; only the token commands do.
type TokenWriter interface {
	TokenStore

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
