package config

import (
	"os"
	"strconv"
	"time"
)

// FromEnv overlays RHIST_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("RHIST_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("RHIST_PACKAGES_DIR"); v != "" {
		cfg.PackagesDir = v
	}
	if v := os.Getenv("RHIST_SHOW_HIDDEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowHidden = b
		}
	}
	if v := os.Getenv("RHIST_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxResults = n
		}
	}
	if v := os.Getenv("RHIST_HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.Capacity = n
		}
	}
	if v := os.Getenv("RHIST_SEARCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.History.SearchDebounce = Duration(d)
		}
	}
	if v := os.Getenv("RHIST_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = Duration(d)
		}
	}
	if v := os.Getenv("RHIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("RHIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RHIST_CLIPBOARD"); v != "" {
		cfg.Clipboard = v
	}
	if v := os.Getenv("RHIST_EDITOR"); v != "" {
		cfg.Editor = v
	}
}
