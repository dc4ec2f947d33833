package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	if cfg.Daemon.Port < 0 || cfg.Daemon.Port > 65535 {
		errs = append(errs, fmt.Errorf("daemon.port: %d is out of range 1-65535", cfg.Daemon.Port))
	}
	for i, marker := range cfg.Daemon.Markers {
		if strings.TrimSpace(marker) == "" {
			errs = append(errs, fmt.Errorf("daemon.markers[%d]: must not be empty", i))
		}
	}

	errs = append(errs, validateCommand("lifecycle.start", cfg.Lifecycle.Start)...)
	errs = append(errs, validateCommand("lifecycle.stop", cfg.Lifecycle.Stop)...)
	if cfg.Lifecycle.PollAttempts < 0 {
		errs = append(errs, fmt.Errorf("lifecycle.poll_attempts: must not be negative"))
	}
	if err := validateDuration("lifecycle.poll_interval", cfg.Lifecycle.PollInterval); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Session.Encoding)) {
	case "", EncodingText, EncodingJSON:
	default:
		errs = append(errs, fmt.Errorf("session.encoding: unsupported value %q (want %q or %q)", cfg.Session.Encoding, EncodingText, EncodingJSON))
	}
	if err := validateDuration("session.dial_timeout", cfg.Session.DialTimeout); err != nil {
		errs = append(errs, err)
	}
	if err := validateDuration("session.read_timeout", cfg.Session.ReadTimeout); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unsupported value %q", cfg.Log.Level))
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Format)) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported value %q", cfg.Log.Format))
	}

	return errors.Join(errs...)
}

func validateCommand(key string, argv []string) []error {
	if len(argv) == 0 {
		return nil
	}
	if strings.TrimSpace(argv[0]) == "" {
		return []error{fmt.Errorf("%s: executable must not be empty", key)}
	}
	return nil
}

func validateDuration(key, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	if d < 0 {
		return fmt.Errorf("%s: must not be negative", key)
	}
	return nil
}
