//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.
//

// Package env implements the global environment for the SPDZ runtime.
package env

import (
	"crypto/rand"
	"io"
	"log"
	"os"
)

// Config defines the global system configuration for the runtime. It
// configures system operation for all runtime modules. Config must not
// be modified after being passed to any module. It is safe for
// concurrent use by multiple modules as they do not modify it.
type Config struct {
	// Rand is the source of entropy GetRandom returns. If nil,
	// GetRandom falls back to crypto/rand.Reader. The STS handshake in
	// package client does not consult it; it reads crypto/rand directly.
	Rand io.Reader

	// Verbose enables the debug messages printed through Debugf.
	Verbose bool

	// Logger receives the telemetry line and any diagnostics emitted
	// at processor teardown. If nil, GetLogger falls back to a logger
	// writing to os.Stderr with no prefix.
	Logger *log.Logger

	// ExtLibEnv is the name of the environment variable that names the
	// extension backend's shared object. Defaults to "SPDZ_EXT_LIB"
	// when empty.
	ExtLibEnv string
}

// GetRandom returns the configured source of entropy, or
// crypto/rand.Reader when none is set.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the logger to use for diagnostics and telemetry.
func (config *Config) GetLogger() *log.Logger {
	if config != nil && config.Logger != nil {
		return config.Logger
	}
	return log.New(os.Stderr, "", 0)
}

// Debugf prints a debug message if Verbose is enabled.
func (config *Config) Debugf(format string, a ...interface{}) {
	if config == nil || !config.Verbose {
		return
	}
	config.GetLogger().Printf(format, a...)
}

// ExtLibVar returns the name of the environment variable naming the
// extension backend shared object.
func (config *Config) ExtLibVar() string {
	if config != nil && config.ExtLibEnv != "" {
		return config.ExtLibEnv
	}
	return "SPDZ_EXT_LIB"
}
