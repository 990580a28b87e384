package domain

import (
	"encoding/json"
	"errors"
)

// Result is the settled outcome of a single send.
// Exactly one of Value and Error is set.
type Result struct {
	// Value is the backend's decoded response, passed through unmodified.
	Value json.RawMessage

	// Error is the string projection of the failure.
	Error string

	// StatusCode is the HTTP status of the response, 0 if none was received.
	// It is informational only and never changes the outcome.
	StatusCode int

	// RequestID is the X-Request-Id sent with the request.
	RequestID string

	cause error
}

// ErrorResult is the wire shape of a failed Result.
type ErrorResult struct {
	Error string `json:"error"`
}

// Succeeded builds a success Result around a validated JSON value.
func Succeeded(value json.RawMessage, status int) Result {
	return Result{Value: value, StatusCode: status}
}

// Failed builds an error Result. A nil err yields a generic message so the
// error string is never empty.
func Failed(err error, status int) Result {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result{Error: msg, StatusCode: status, cause: err}
}

// OK reports whether the Result holds a backend value.
func (r Result) OK() bool {
	return r.Error == ""
}

// Err returns the underlying failure, or nil for a success Result.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	if r.cause != nil {
		return r.cause
	}
	return errors.New(r.Error)
}

// Kind returns the failure classification, or an empty Kind on success.
func (r Result) Kind() ErrorKind {
	var se *SendError
	if errors.As(r.cause, &se) {
		return se.Kind
	}
	return ""
}

// MarshalJSON renders the backend value verbatim, or {"error": "..."}.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		return json.Marshal(ErrorResult{Error: r.Error})
	}
	if len(r.Value) == 0 {
		return []byte("null"), nil
	}
	return r.Value, nil
}
