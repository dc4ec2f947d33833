package config

// Config is the top-level zowex configuration.
type Config struct {
	Daemon    DaemonConfig    `toml:"daemon"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	Session   SessionConfig   `toml:"session"`
	Log       LogConfig       `toml:"log"`
}

// DaemonConfig describes where the daemon listens and how to recognize its process.
type DaemonConfig struct {
	Port        int      `toml:"port"`
	ProcessName string   `toml:"process_name"`
	Markers     []string `toml:"markers"`
}

// LifecycleConfig holds the external start/stop commands and the polling
// discipline used to confirm their effect. Command arguments may contain
// the {port} placeholder.
type LifecycleConfig struct {
	Start        []string `toml:"start"`
	Stop         []string `toml:"stop"`
	PollInterval string   `toml:"poll_interval"`
	PollAttempts int      `toml:"poll_attempts"`
}

// SessionConfig tunes the socket exchange with the daemon.
type SessionConfig struct {
	Encoding    string   `toml:"encoding"` // "text" or "json"
	EnvPrefixes []string `toml:"env_prefixes"`
	DialTimeout string   `toml:"dial_timeout"`
	ReadTimeout string   `toml:"read_timeout"`
}

// LogConfig controls launcher diagnostics written to stderr.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}
