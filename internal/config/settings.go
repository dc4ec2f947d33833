package config

import (
	"fmt"
	"strings"
	"time"
)

// LogLevelEnvVar overrides log.level for a single invocation.
const LogLevelEnvVar = "ZOWEX_LOG_LEVEL"

const (
	defaultPollInterval = 3 * time.Second
	defaultPollAttempts = 10
	defaultDialTimeout  = 5 * time.Second
	defaultLogLevel     = "warn"
	defaultLogFormat    = "console"
)

// Encoding names accepted by session.encoding.
const (
	EncodingText = "text"
	EncodingJSON = "json"
)

var (
	defaultMarkers     = []string{"@zowe/cli", "--daemon"}
	defaultEnvPrefixes = []string{"ZOWE_"}
)

// Settings is the fully resolved configuration handed to the core
// components. Nothing in it changes for the lifetime of an invocation.
type Settings struct {
	Endpoint   Endpoint
	ConfigPath string

	ProcessName string
	Markers     []string

	StartCommand []string
	StopCommand  []string
	PollInterval time.Duration
	PollAttempts int

	Encoding       string
	PassthroughEnv map[string]string
	DialTimeout    time.Duration
	ReadTimeout    time.Duration

	LogLevel  string
	LogFormat string
}

// Resolve merges cfg, env and platform defaults for goos into Settings.
// A malformed setting is returned as a *ConfigError.
func Resolve(cfg *Config, env Environ, goos string) (*Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	endpoint, err := ResolveEndpoint(env, cfg.Daemon.Port)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Endpoint:     endpoint,
		ConfigPath:   Path(env),
		ProcessName:  cfg.Daemon.ProcessName,
		Markers:      append([]string(nil), cfg.Daemon.Markers...),
		StartCommand: append([]string(nil), cfg.Lifecycle.Start...),
		StopCommand:  append([]string(nil), cfg.Lifecycle.Stop...),
		PollAttempts: cfg.Lifecycle.PollAttempts,
		Encoding:     strings.ToLower(strings.TrimSpace(cfg.Session.Encoding)),
		LogLevel:     strings.ToLower(strings.TrimSpace(cfg.Log.Level)),
		LogFormat:    strings.ToLower(strings.TrimSpace(cfg.Log.Format)),
	}

	if s.ProcessName == "" {
		s.ProcessName = defaultProcessName(goos)
	}
	if len(s.Markers) == 0 {
		s.Markers = append([]string(nil), defaultMarkers...)
	}
	if len(s.StartCommand) == 0 {
		s.StartCommand = defaultScript(goos, "zowe-start-daemon.cmd")
	}
	if len(s.StopCommand) == 0 {
		s.StopCommand = defaultScript(goos, "zowe-stop-daemon.cmd")
	}
	if s.PollAttempts == 0 {
		s.PollAttempts = defaultPollAttempts
	}
	if s.Encoding == "" {
		s.Encoding = EncodingText
	}
	if s.LogFormat == "" {
		s.LogFormat = defaultLogFormat
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	if level, ok := env.Lookup(LogLevelEnvVar); ok && strings.TrimSpace(level) != "" {
		s.LogLevel = strings.ToLower(strings.TrimSpace(level))
	}

	if s.PollInterval, err = durationSetting("lifecycle.poll_interval", cfg.Lifecycle.PollInterval, defaultPollInterval); err != nil {
		return nil, err
	}
	if s.DialTimeout, err = durationSetting("session.dial_timeout", cfg.Session.DialTimeout, defaultDialTimeout); err != nil {
		return nil, err
	}
	if s.ReadTimeout, err = durationSetting("session.read_timeout", cfg.Session.ReadTimeout, 0); err != nil {
		return nil, err
	}

	prefixes := cfg.Session.EnvPrefixes
	if len(prefixes) == 0 {
		prefixes = defaultEnvPrefixes
	}
	s.PassthroughEnv = env.WithPrefixes(prefixes)

	return s, nil
}

func defaultProcessName(goos string) string {
	if goos == "windows" {
		return "node.exe"
	}
	return "node"
}

// defaultScript returns the stock lifecycle command. Only Windows ships
// launch scripts; elsewhere lifecycle commands must be configured.
func defaultScript(goos, script string) []string {
	if goos != "windows" {
		return nil
	}
	return []string{"cmd", "/c", script, "{port}"}
}

func durationSetting(key, raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigError{Key: key, Value: raw, Err: err}
	}
	if d < 0 {
		return 0, &ConfigError{Key: key, Value: raw, Err: fmt.Errorf("must not be negative")}
	}
	return d, nil
}
