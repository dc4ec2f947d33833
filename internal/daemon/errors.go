package daemon

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds carried by *LaunchError. Match them with errors.Is.
var (
	ErrSpawnFailed   = errors.New("could not launch")
	ErrCommandFailed = errors.New("command failed")
	ErrTimeout       = errors.New("timed out")
	ErrStalePID      = errors.New("stale daemon pid")
	ErrUnsupported   = errors.New("not supported on this platform")
)

// LaunchError describes a failed lifecycle action.
type LaunchError struct {
	Action   Action
	Kind     error
	Command  string // rendered external command, when one was run
	ExitCode int    // valid for ErrCommandFailed
	Output   string // captured stdout/stderr of the external command
	Detail   string
	Err      error
}

func (e *LaunchError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Action))
	b.WriteString(": ")
	switch {
	case errors.Is(e.Kind, ErrSpawnFailed):
		fmt.Fprintf(&b, "could not launch %q", e.Command)
	case errors.Is(e.Kind, ErrCommandFailed):
		fmt.Fprintf(&b, "%q exited with status %d", e.Command, e.ExitCode)
	default:
		b.WriteString(e.Kind.Error())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *LaunchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
