package config

import "strings"

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validFormats lists the address formats usable as a wallet default. P2WSH
// is excluded: it commits to a script, not a key, so it cannot name a
// default key-derived address.
var validFormats = map[string]bool{
	"p2pkh":       true,
	"p2sh_p2wpkh": true,
	"bech32":      true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet3" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if !validFormats[strings.ToLower(cfg.DefaultFormat)] {
		return ErrInvalidFormat
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
