// Copyright (c) 2026 The Drips developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidCycleSecs indicates a cycle length outside the accepted range.
	ErrInvalidCycleSecs = errors.New("config: cycle length must be positive")

	// ErrInvalidMaxReceivers indicates a receiver cap outside the accepted range.
	ErrInvalidMaxReceivers = errors.New("config: max receivers must be between 1 and 10000")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrUnknownConfigKey indicates a config key that is not recognized.
	ErrUnknownConfigKey = errors.New("config: unknown configuration key")

	// ErrInvalidConfigValue indicates a config value that cannot be parsed.
	ErrInvalidConfigValue = errors.New("config: invalid configuration value")
)
