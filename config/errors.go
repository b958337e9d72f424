// Copyright (c) 2026 The Curatehub developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyRegistryAddress indicates no registry contract address was set.
	ErrEmptyRegistryAddress = errors.New("config: registry address must not be empty")

	// ErrInvalidRegistryAddress indicates a malformed registry contract address.
	ErrInvalidRegistryAddress = errors.New("config: invalid registry address")

	// ErrEmptyRPCURL indicates no chain node endpoint was set.
	ErrEmptyRPCURL = errors.New("config: rpc url must not be empty")

	// ErrEmptySubgraphURL indicates no indexer endpoint was set.
	ErrEmptySubgraphURL = errors.New("config: subgraph url must not be empty")

	// ErrInvalidBatchSize indicates a negative indexer page size.
	ErrInvalidBatchSize = errors.New("config: batch size must not be negative")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)
