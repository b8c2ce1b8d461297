package fetch

import (
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// ErrNetwork covers transport failures and unexpected HTTP statuses.
	ErrNetwork ErrorKind = "network"
	// ErrTimeout means the request exceeded the client's time budget.
	ErrTimeout ErrorKind = "timeout"
	// ErrShape means the payload decoded but is missing expected structure.
	ErrShape ErrorKind = "invalid-shape"
)

// Error is a classified fetch failure. Callers treat it as a simple failure
// signal plus a human-readable message; there is no retry policy.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a fetch error, or ErrNetwork for anything
// that was not classified at the client boundary.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ErrNetwork
}

// classify wraps a transport error, distinguishing timeouts.
func classify(message string, err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: ErrTimeout, Message: message, Err: err}
	}
	return &Error{Kind: ErrNetwork, Message: message, Err: err}
}
