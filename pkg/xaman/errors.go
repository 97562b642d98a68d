package xaman

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadNotFound marks a sign request the platform does not know.
	ErrPayloadNotFound = errors.New("payload not found")
	// ErrWSConnect wraps payload subscription handshake failures.
	ErrWSConnect = errors.New("error connecting payload websocket")
	// ErrWSRead wraps mid-stream payload subscription failures.
	ErrWSRead = errors.New("error reading payload websocket")
)

// APIError is a non-success response from the platform API, surfaced after
// the retry budget is spent. Reference and Code correlate the failure with
// the Xaman developer console.
type APIError struct {
	StatusCode int
	Message    string
	Reference  string
	Code       int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("xaman api error (status %d): %s", e.StatusCode, e.Message)
}

// NotFoundError reports a missing payload. It matches ErrPayloadNotFound
// with errors.Is.
type NotFoundError struct {
	UUID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPayloadNotFound.Error(), e.UUID)
}

func (e *NotFoundError) Unwrap() error { return ErrPayloadNotFound }

// WSError is a payload subscription transport failure carrying the payload
// it belongs to.
type WSError struct {
	UUID string
	Err  error
}

func (e *WSError) Error() string {
	return fmt.Sprintf("payload %s: %v", e.UUID, e.Err)
}

func (e *WSError) Unwrap() error { return e.Err }

// ValidationError reports malformed caller input, raised before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
