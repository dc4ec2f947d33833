package ipc

import (
	"errors"
	"fmt"
)

// Error kinds carried by *SessionError.
var (
	ErrConnectFailed = errors.New("could not connect to daemon")
	ErrWriteFailed   = errors.New("could not send request to daemon")
	ErrReadFailed    = errors.New("could not read daemon response")
)

// SessionError describes a failed exchange with the daemon.
type SessionError struct {
	Kind    error
	Address string
	Err     error
}

func (e *SessionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v at %s", e.Kind, e.Address)
	}
	return fmt.Sprintf("%v at %s: %v", e.Kind, e.Address, e.Err)
}

// Unwrap exposes both the kind and the transport cause.
func (e *SessionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
