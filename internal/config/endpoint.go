package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	// PortEnvVar overrides the daemon port.
	PortEnvVar = "ZOWE_DAEMON"
	// DefaultPort is used when neither the environment nor the config file sets one.
	DefaultPort = 4000
	// LoopbackHost is the only host the launcher ever talks to.
	LoopbackHost = "127.0.0.1"
)

// Endpoint is the daemon's listening socket.
type Endpoint struct {
	Host string
	Port int
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// PortString returns the decimal port, as passed to lifecycle scripts.
func (e Endpoint) PortString() string {
	return strconv.Itoa(e.Port)
}

func (e Endpoint) String() string {
	return e.Address()
}

// ConfigError reports a malformed user setting.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResolveEndpoint returns the loopback endpoint for the daemon. A set
// ZOWE_DAEMON must be a valid port; otherwise fallback is used, or
// DefaultPort when fallback is zero.
func ResolveEndpoint(env Environ, fallback int) (Endpoint, error) {
	port := fallback
	if port == 0 {
		port = DefaultPort
	}

	if raw, ok := env.Lookup(PortEnvVar); ok {
		parsed, err := parsePort(raw)
		if err != nil {
			return Endpoint{}, &ConfigError{Key: PortEnvVar, Value: raw, Err: err}
		}
		port = parsed
	}

	return Endpoint{Host: LoopbackHost, Port: port}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("port must be an integer")
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be between 1 and 65535")
	}
	return port, nil
}
