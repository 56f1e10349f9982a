// Package config loads rhist settings from a YAML or JSON file and overlays
// RHIST_* environment variables.
package config
