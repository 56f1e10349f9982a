package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Root          string   `yaml:"root" json:"root"`
	PackagesDir   string   `yaml:"packagesDir" json:"packagesDir"`
	ShowHidden    bool     `yaml:"showHidden" json:"showHidden"`
	MaxResults    int      `yaml:"maxResults" json:"maxResults"`
	History       History  `yaml:"history" json:"history"`
	PollInterval  Duration `yaml:"pollInterval" json:"pollInterval"`
	LogFile       string   `yaml:"logFile" json:"logFile"`
	LogLevel      string   `yaml:"logLevel" json:"logLevel"`
	InitialPanels int      `yaml:"initialPanels" json:"initialPanels"`
	// Clipboard and Editor are command lines that replace the detected
	// clipboard tool and editor.
	Clipboard string `yaml:"clipboard" json:"clipboard"`
	Editor    string `yaml:"editor" json:"editor"`
}

// History captures undo/redo tuning.
type History struct {
	Capacity       int      `yaml:"capacity" json:"capacity"`
	SearchDebounce Duration `yaml:"searchDebounce" json:"searchDebounce"`
}

// Duration is a time.Duration written as "2s" or "150ms" in config files.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML accepts duration strings.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalJSON accepts duration strings.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.parse(s)
}

// MarshalJSON writes the duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Root:        ".",
		PackagesDir: "packages",
		MaxResults:  500,
		History: History{
			Capacity:       50,
			SearchDebounce: Duration(2 * time.Second),
		},
		PollInterval:  Duration(100 * time.Millisecond),
		LogLevel:      "info",
		InitialPanels: 1,
	}
}

// Load reads configuration from a YAML or JSON file (by extension). If path is
// empty, returns defaults. Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists, defaults otherwise.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}
	return Load(path)
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}
	if c.History.SearchDebounce < 0 {
		return fmt.Errorf("search debounce must not be negative")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.InitialPanels < 1 {
		return fmt.Errorf("initial panels must be at least 1, got %d", c.InitialPanels)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
