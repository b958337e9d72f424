// Copyright (c) 2026 The Curatehub developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/curatehub/libcurate-go/registry"
)

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if _, err := registry.ParamsForChain(cfg.ChainID); err != nil {
		return err
	}

	if cfg.RegistryAddress == "" {
		return ErrEmptyRegistryAddress
	}
	if !registry.IsHexAddress(cfg.RegistryAddress) {
		return fmt.Errorf("%w: %q", ErrInvalidRegistryAddress, cfg.RegistryAddress)
	}

	if cfg.RPCURL == "" {
		return ErrEmptyRPCURL
	}
	if cfg.SubgraphURL == "" {
		return ErrEmptySubgraphURL
	}

	if cfg.BatchSize < 0 {
		return ErrInvalidBatchSize
	}

	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
		}
	}

	return nil
}
