//
// loader.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package ext

import (
	"fmt"
	"os"
	"plugin"
)

// NewBackendSymbol names the symbol every extension shared object must
// export: a zero-argument constructor for its Backend implementation.
// This is the Go-native analogue of a C function-pointer table. The
// loaded handle is treated as an immutable, lazily initialized value
// owned by the top-level runtime entry point rather than an ambient
// global, which is why Load returns a fresh Backend instead of caching
// one in a package-level variable.
const NewBackendSymbol = "NewBackend"

// Load opens the shared object at path and constructs its Backend via
// the exported NewBackend symbol.
func Load(path string) (Backend, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ext: BackendLoadFailure: %w", err)
	}
	sym, err := p.Lookup(NewBackendSymbol)
	if err != nil {
		return nil, fmt.Errorf("ext: BackendLoadFailure: missing %s symbol: %w", NewBackendSymbol, err)
	}
	ctor, ok := sym.(func() Backend)
	if !ok {
		return nil, fmt.Errorf("ext: BackendLoadFailure: %s has unexpected type %T", NewBackendSymbol, sym)
	}
	return ctor(), nil
}

// LoadFromEnv reads the path to the extension shared object from the
// environment variable named envVar ("SPDZ_EXT_LIB" when empty) and
// loads it. Absence of the variable is fatal (ErrConfigMissing).
func LoadFromEnv(envVar string) (Backend, error) {
	if envVar == "" {
		envVar = "SPDZ_EXT_LIB"
	}
	path := os.Getenv(envVar)
	if path == "" {
		return nil, fmt.Errorf("ext: ConfigMissing: environment variable %s is not set", envVar)
	}
	return Load(path)
}
