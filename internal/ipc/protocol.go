package ipc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CWDMarker precedes the caller's working directory in a text payload.
const CWDMarker = "--cwd"

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsageErr = 2
)

// Invocation is what the user asked the daemon to run.
type Invocation struct {
	Args []string
	Dir  string
	// Env carries configuration context for the daemon. Only encodings that
	// can represent it transmit it.
	Env map[string]string
	// Stdin is piped input for the command, sent only by JSONEncoder.
	Stdin []byte
}

// Encoder turns an Invocation into the bytes written to the daemon.
type Encoder interface {
	Encode(inv Invocation) ([]byte, error)
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return TextEncoder{}, nil
	case "json":
		return JSONEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown session encoding %q", name)
	}
}

// TextEncoder produces the daemon's native request line: the arguments
// joined by single spaces, then the working-directory marker and the
// directory with a trailing separator.
type TextEncoder struct{}

// Encode implements Encoder.
func (TextEncoder) Encode(inv Invocation) ([]byte, error) {
	var b strings.Builder
	b.WriteString(strings.Join(inv.Args, " "))
	b.WriteByte(' ')
	b.WriteString(CWDMarker)
	b.WriteByte(' ')
	b.WriteString(withTrailingSeparator(inv.Dir))
	return []byte(b.String()), nil
}

func withTrailingSeparator(dir string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`) {
		return dir
	}
	return dir + "/"
}

// stdinSeparator follows the JSON header when raw stdin bytes are appended.
const stdinSeparator = '\f'

// jsonRequest is the structured request understood by daemons that accept
// forwarded environment. Stdin is always null: the bytes themselves follow
// the header.
type jsonRequest struct {
	Argv        []string          `json:"argv"`
	Cwd         string            `json:"cwd"`
	Env         map[string]string `json:"env,omitempty"`
	StdinLength int               `json:"stdinLength"`
	Stdin       *string           `json:"stdin"`
}

// JSONEncoder produces a JSON header per request, followed by a form feed
// and the stdin bytes when there are any.
type JSONEncoder struct{}

// Encode implements Encoder.
func (JSONEncoder) Encode(inv Invocation) ([]byte, error) {
	args := inv.Args
	if args == nil {
		args = []string{}
	}
	data, err := json.Marshal(jsonRequest{
		Argv:        args,
		Cwd:         withTrailingSeparator(inv.Dir),
		Env:         inv.Env,
		StdinLength: len(inv.Stdin),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	if len(inv.Stdin) > 0 {
		data = append(data, stdinSeparator)
		data = append(data, inv.Stdin...)
	}
	return data, nil
}

// ensureNonEmpty substitutes a single space for an empty payload so the
// daemon always sees a write.
func ensureNonEmpty(payload []byte) []byte {
	if len(payload) == 0 {
		return []byte(" ")
	}
	return payload
}
