package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns the per-user config file location, or "" when the
// platform reports no config directory.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rhist", "config.yaml")
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "rhist", "config.yaml")
}
