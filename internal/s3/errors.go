package s3

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a GET or HEAD targets a key that does not
	// exist in the bucket.
	ErrNotFound = errors.New("object not found")

	// ErrAuthFailed is returned when the store rejects the request signature
	// or credentials (HTTP 403).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidMode is returned when an object is opened with a mode other
	// than ModeRead or ModeWrite, or when an operation does not match the
	// handle's mode.
	ErrInvalidMode = errors.New("invalid mode: must be exactly 'r' or 'w'")

	// ErrClosed is returned by Read and Write after the handle was closed.
	ErrClosed = errors.New("object handle is closed")
)

// StoreError reports a non-2xx response that is neither 404 nor 403. The raw
// status and response body are kept for diagnostics.
type StoreError struct {
	Status int
	Body   []byte
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: status %d: %s", e.Status, e.Body)
}

// TransportError wraps a connection or timeout failure from the HTTP
// transport before any store response was received.
type TransportError struct {
	Op  string
	Key string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
