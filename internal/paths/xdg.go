package paths

import "path/filepath"

// Getenv looks up an environment variable, returning "" when unset.
type Getenv func(key string) string

func homeDir(getenv Getenv) string {
	if h := getenv("HOME"); h != "" {
		return h
	}
	return getenv("USERPROFILE")
}

func xdgDir(getenv Getenv, envVar, fallbackSuffix string) string {
	if v := getenv(envVar); v != "" {
		return filepath.Join(v, "zowex")
	}
	return filepath.Join(homeDir(getenv), fallbackSuffix, "zowex")
}

// ConfigDir returns the zowex config directory ($XDG_CONFIG_HOME/zowex).
func ConfigDir(getenv Getenv) string {
	if getenv("XDG_CONFIG_HOME") == "" {
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "zowex")
		}
	}
	return xdgDir(getenv, "XDG_CONFIG_HOME", ".config")
}

// ConfigFile returns the path to config.toml.
func ConfigFile(getenv Getenv) string {
	return filepath.Join(ConfigDir(getenv), "config.toml")
}
