// Copyright (c) 2026 The Drips developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "strings"

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// maxReceiversCap is the upper bound on the configurable receiver cap; a
// single reconfiguration touches every receiver, so the cap bounds the work
// of one atomic operation.
const maxReceiversCap = 10_000

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.CycleSecs == 0 {
		return ErrInvalidCycleSecs
	}

	if cfg.MaxReceivers < 1 || cfg.MaxReceivers > maxReceiversCap {
		return ErrInvalidMaxReceivers
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
