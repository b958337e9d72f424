// Copyright (c) 2026 The Curatehub developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatehub/libcurate-go/registry"
)

const testRegistryAddr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

func validConfig() Config {
	cfg, _ := Default(1)
	cfg.RegistryAddress = testRegistryAddr
	return cfg
}

func TestDefault(t *testing.T) {
	cfg, err := Default(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.ChainID)
	assert.Equal(t, registry.Mainnet.DefaultRPCURL, cfg.RPCURL)
	assert.Equal(t, registry.Mainnet.DefaultSubgraphURL, cfg.SubgraphURL)
	assert.Equal(t, DefaultIPFSGateways, cfg.IPFSGateways)
	assert.NotZero(t, cfg.BatchSize)

	gnosis, err := Default(100)
	require.NoError(t, err)
	assert.Equal(t, registry.Gnosis.DefaultSubgraphURL, gnosis.SubgraphURL)
}

func TestDefaultUnsupportedChain(t *testing.T) {
	_, err := Default(137)
	assert.ErrorIs(t, err, registry.ErrUnsupportedChain)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))

	cfg := validConfig()
	cfg.LogLevel = "warn"
	assert.NoError(t, Validate(cfg))
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unsupported chain", func(c *Config) { c.ChainID = 42 }, registry.ErrUnsupportedChain},
		{"empty registry address", func(c *Config) { c.RegistryAddress = "" }, ErrEmptyRegistryAddress},
		{"malformed registry address", func(c *Config) { c.RegistryAddress = "0x123" }, ErrInvalidRegistryAddress},
		{"empty rpc url", func(c *Config) { c.RPCURL = "" }, ErrEmptyRPCURL},
		{"empty subgraph url", func(c *Config) { c.SubgraphURL = "" }, ErrEmptySubgraphURL},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }, ErrInvalidBatchSize},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), tc.want)
		})
	}
}

func TestDefaultGatewaysAreCopied(t *testing.T) {
	cfg, err := Default(1)
	require.NoError(t, err)
	cfg.IPFSGateways[0] = "https://example.com"
	assert.Equal(t, "https://ipfs.io", DefaultIPFSGateways[0])
}
