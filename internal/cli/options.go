package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kk-code-lab/rhist/internal/config"
)

// loadConfig resolves the effective configuration: file, then RHIST_*
// environment variables, then flags.
func loadConfig(opts *RootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	config.FromEnv(&cfg)

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. The terminal belongs to the browser,
// so logs go to cfg.LogFile or nowhere.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}
