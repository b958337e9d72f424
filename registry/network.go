package registry

import (
	"fmt"
	"sort"
)

// ChainParams defines the parameters of one supported deployment chain.
type ChainParams struct {
	ChainID            uint64 `json:"chain_id"`
	Name               string `json:"name"`
	NativeSymbol       string `json:"native_symbol"`
	NativeDecimals     int    `json:"native_decimals"`
	DefaultRPCURL      string `json:"rpc_url"`
	DefaultSubgraphURL string `json:"subgraph_url"`
}

// Predefined chain configurations.
var (
	Mainnet = ChainParams{
		ChainID:            1,
		Name:               "mainnet",
		NativeSymbol:       "ETH",
		NativeDecimals:     18,
		DefaultRPCURL:      "https://eth.llamarpc.com",
		DefaultSubgraphURL: "https://api.thegraph.com/subgraphs/name/curatehub/curate-mainnet",
	}

	Gnosis = ChainParams{
		ChainID:            100,
		Name:               "gnosis",
		NativeSymbol:       "xDAI",
		NativeDecimals:     18,
		DefaultRPCURL:      "https://rpc.gnosischain.com",
		DefaultSubgraphURL: "https://api.thegraph.com/subgraphs/name/curatehub/curate-gnosis",
	}
)

// supported maps chain ids to their parameters.
var supported = map[uint64]*ChainParams{
	1:   &Mainnet,
	100: &Gnosis,
}

// ParamsForChain returns the parameters for the given chain id.
// Unsupported ids fail fast with ErrUnsupportedChain so that misconfigured
// callers are rejected at construction time rather than on first use.
func ParamsForChain(chainID uint64) (*ChainParams, error) {
	params, ok := supported[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedChain, chainID)
	}
	return params, nil
}

// SupportedChainIDs returns the supported chain ids in ascending order.
func SupportedChainIDs() []uint64 {
	ids := make([]uint64, 0, len(supported))
	for id := range supported {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
