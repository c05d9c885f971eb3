// Package config holds the wallet's runtime configuration: data directory,
// network selection, default address format and logging, persisted in a
// plain key=value file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds all wallet configuration values.
type Config struct {
	// DataDir is the directory holding the seed store and log files.
	DataDir string

	// Network selects the parameter table: "mainnet", "testnet3" or
	// "regtest".
	Network string

	// DefaultFormat is the address format used for new addresses:
	// "p2pkh", "p2sh_p2wpkh" or "bech32".
	DefaultFormat string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFile is the log destination; empty means stderr.
	LogFile string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:       filepath.Join(home, ".btcwallet"),
		Network:       "mainnet",
		DefaultFormat: "bech32",
		LogLevel:      "info",
	}
}

// KeystorePath returns the location of the seed database under DataDir.
func (c Config) KeystorePath() string {
	return filepath.Join(c.DataDir, "seeds.db")
}

// LoadConfig reads a key=value config file. Missing keys keep their
// defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
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

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "format":
			cfg.DefaultFormat = value
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration in the format LoadConfig reads.
func SaveConfig(path string, cfg Config) error {
	entries := map[string]string{
		"datadir":  cfg.DataDir,
		"network":  cfg.Network,
		"format":   cfg.DefaultFormat,
		"loglevel": cfg.LogLevel,
		"logfile":  cfg.LogFile,
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, entries[key])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
