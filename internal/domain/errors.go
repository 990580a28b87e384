package domain

import "errors"

// Domain errors represent error conditions in the chatship domain.
// These errors can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("chatship: invalid configuration")

	// ErrTokenNotFound is returned by token commands when no token is stored.
	ErrTokenNotFound = errors.New("chatship: token not found")

	// ErrUnsupportedStore is returned for an unknown token store name.
	ErrUnsupportedStore = errors.New("chatship: unsupported token store")

	// ErrEphemeralStore is returned when writing a token to a store that does
	// not outlive the process.
	ErrEphemeralStore = errors.New("chatship: token store does not persist")
)

// ErrorKind classifies send failures.
type ErrorKind string

const (
	// KindStorage covers failures reading the token store.
	KindStorage ErrorKind = "storage"

	// KindNetwork covers request construction and transport failures.
	KindNetwork ErrorKind = "network"

	// KindParse covers response body read and JSON decode failures.
	KindParse ErrorKind = "parse"
)

// SendError is the typed failure behind an error Result.
type SendError struct {
	Kind ErrorKind
	Err  error
}

// NewSendError wraps err with a failure kind.
func NewSendError(kind ErrorKind, err error) *SendError {
	return &SendError{Kind: kind, Err: err}
}

func (e *SendError) Error() string {
	if e.Err == nil {
		return string(e.Kind) + " error"
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}
