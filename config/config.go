// Package config holds the engine's runtime configuration: where state is
// stored, how long a settlement cycle lasts and how large receiver lists
// may grow. The config file is a plain "key = value" file with comments.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCycleSecs is one week. The cycle length is a protocol constant of
// a deployment: changing it on existing state renumbers every cycle.
const DefaultCycleSecs = 7 * 24 * 60 * 60

// DefaultMaxReceivers bounds the receiver list of a single sender.
const DefaultMaxReceivers = 100

// Config is the engine's runtime configuration.
type Config struct {
	// DataDir is the directory holding the state database.
	DataDir string

	// CycleSecs is the settlement cycle length in seconds.
	CycleSecs uint64

	// MaxReceivers caps the receiver list of a single sender.
	MaxReceivers int

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// DefaultConfig returns the default configuration. The data directory
// defaults to ~/.drips.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:      filepath.Join(home, ".drips"),
		CycleSecs:    DefaultCycleSecs,
		MaxReceivers: DefaultMaxReceivers,
		LogLevel:     "info",
	}
}

// LoadConfig reads a configuration file. Missing keys keep their default
// values; blank lines and lines starting with '#' are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "cyclesecs":
			secs, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: cyclesecs %q", ErrInvalidConfigValue, lineNo, value)
			}
			cfg.CycleSecs = secs
		case "maxreceivers":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: maxreceivers %q", ErrInvalidConfigValue, lineNo, value)
			}
			cfg.MaxReceivers = n
		case "loglevel":
			cfg.LogLevel = value
		default:
			return cfg, fmt.Errorf("%w: line %d: %q", ErrUnknownConfigKey, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path, creating parent directories
// as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "cyclesecs = %d\n", cfg.CycleSecs)
	fmt.Fprintf(&b, "maxreceivers = %d\n", cfg.MaxReceivers)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
