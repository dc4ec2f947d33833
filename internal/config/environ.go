package config

import (
	"os"
	"strings"
)

// Environ is a read-only snapshot of process environment variables.
// It is taken once at the entry point and passed down so nothing below
// the dispatcher reads the real process environment.
type Environ map[string]string

// OSEnviron snapshots the current process environment.
func OSEnviron() Environ {
	return EnvironFrom(os.Environ())
}

// EnvironFrom parses KEY=VALUE pairs. Later duplicates win.
func EnvironFrom(pairs []string) Environ {
	env := make(Environ, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Get returns the value of key, or "" when unset.
func (e Environ) Get(key string) string {
	return e[key]
}

// Lookup returns the value of key and whether it was set.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// WithPrefixes returns the variables whose names start with any prefix.
func (e Environ) WithPrefixes(prefixes []string) map[string]string {
	out := make(map[string]string)
	for key, value := range e {
		for _, prefix := range prefixes {
			if prefix != "" && strings.HasPrefix(key, prefix) {
				out[key] = value
				break
			}
		}
	}
	return out
}
