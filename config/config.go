// Copyright (c) 2026 The Curatehub developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config holds the SDK configuration: which chain and registry to
// target and which external endpoints to use.
package config

import (
	"github.com/curatehub/libcurate-go/items"
	"github.com/curatehub/libcurate-go/registry"
)

// DefaultIPFSGateways are tried in order when fetching content.
var DefaultIPFSGateways = []string{
	"https://ipfs.io",
	"https://cloudflare-ipfs.com",
}

// Config is the complete configuration for one registry deployment.
type Config struct {
	// ChainID selects the deployment chain. Only the ids listed by
	// registry.SupportedChainIDs are accepted.
	ChainID uint64 `json:"chain_id"`

	// RegistryAddress is the registry contract address.
	RegistryAddress string `json:"registry_address"`

	// RPCURL is the chain node endpoint.
	RPCURL string `json:"rpc_url"`

	// SubgraphURL is the GraphQL indexing service endpoint.
	SubgraphURL string `json:"subgraph_url"`

	// IPFSAPIURL is the content storage API node used for uploads.
	// May be empty for read-only use.
	IPFSAPIURL string `json:"ipfs_api_url"`

	// IPFSGateways are content storage gateways, tried in order.
	IPFSGateways []string `json:"ipfs_gateways"`

	// BatchSize is the indexer page size. Zero means the default.
	BatchSize int `json:"batch_size"`

	// LogLevel enables pipeline logging at the given zerolog level
	// ("debug", "info", "warn", ...). Empty disables logging.
	LogLevel string `json:"log_level,omitempty"`
}

// Default returns a configuration for the given chain with its default
// endpoints filled in. The registry address must still be set by the
// caller. Fails fast with registry.ErrUnsupportedChain for unknown ids.
func Default(chainID uint64) (Config, error) {
	params, err := registry.ParamsForChain(chainID)
	if err != nil {
		return Config{}, err
	}
	return Config{
		ChainID:      chainID,
		RPCURL:       params.DefaultRPCURL,
		SubgraphURL:  params.DefaultSubgraphURL,
		IPFSGateways: append([]string(nil), DefaultIPFSGateways...),
		BatchSize:    items.DefaultBatchSize,
	}, nil
}
