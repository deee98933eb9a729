package htmltree

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns XDG config home or a platform fallback.
func DefaultConfigDir(app string) string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".")
		}
		configHome = filepath.Join(home, ".config")
	}
	if app == "" {
		return configHome
	}
	return filepath.Join(configHome, app)
}

// DefaultConfigFile returns the per-user config file path for app.
func DefaultConfigFile(app string) string {
	return filepath.Join(DefaultConfigDir(app), "config.toml")
}
