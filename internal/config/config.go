package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/lydakis/zowex/internal/paths"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the default config file and returns the parsed Config.
// If the config file does not exist, it returns an empty Config (no error).
func Load(env Environ) (*Config, error) {
	return LoadFrom(Path(env), env)
}

// LoadFrom reads and parses a config file at the given path, expanding
// ${ENV_VAR} placeholders from env.
func LoadFrom(path string, env Environ) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	expandConfigEnvVars(&cfg, env)
	return &cfg, nil
}

// Path returns the config file location derived from env.
func Path(env Environ) string {
	return paths.ConfigFile(env.Get)
}

func expandConfigEnvVars(cfg *Config, env Environ) {
	if cfg == nil {
		return
	}

	cfg.Daemon.ProcessName = expandEnvVars(cfg.Daemon.ProcessName, env)
	expandAll(cfg.Daemon.Markers, env)
	expandAll(cfg.Lifecycle.Start, env)
	expandAll(cfg.Lifecycle.Stop, env)
	cfg.Lifecycle.PollInterval = expandEnvVars(cfg.Lifecycle.PollInterval, env)
	cfg.Session.DialTimeout = expandEnvVars(cfg.Session.DialTimeout, env)
	cfg.Session.ReadTimeout = expandEnvVars(cfg.Session.ReadTimeout, env)
}

func expandAll(values []string, env Environ) {
	for i := range values {
		values[i] = expandEnvVars(values[i], env)
	}
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string, env Environ) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := env.Lookup(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
