package chain

import (
	"context"
	"math/big"

	"github.com/curatehub/libcurate-go/registry"
)

// ArbitratorContract is a typed binding over an arbitrator contract's
// cost getters. Arbitrator addresses are discovered dynamically from the
// registry, so bindings are created per address.
type ArbitratorContract struct {
	caller  Caller
	address string
}

// NewArbitratorContract creates a binding for the arbitrator at address.
func NewArbitratorContract(caller Caller, address string) (*ArbitratorContract, error) {
	norm, err := registry.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return &ArbitratorContract{caller: caller, address: norm}, nil
}

// Address returns the arbitrator's lowercase contract address.
func (a *ArbitratorContract) Address() string { return a.address }

// ArbitrationCost returns the cost of arbitration for the given extra
// data, in base units.
func (a *ArbitratorContract) ArbitrationCost(ctx context.Context, extraData []byte) (*big.Int, error) {
	if extraData == nil {
		extraData = []byte{}
	}
	out, err := a.caller.Read(ctx, a.address, "arbitrationCost", extraData)
	if err != nil {
		return nil, err
	}
	return outBig(out, 0, "arbitrationCost")
}

// AppealCost returns the cost of appealing the given dispute, in base
// units.
func (a *ArbitratorContract) AppealCost(ctx context.Context, disputeID *big.Int, extraData []byte) (*big.Int, error) {
	if extraData == nil {
		extraData = []byte{}
	}
	out, err := a.caller.Read(ctx, a.address, "appealCost", disputeID, extraData)
	if err != nil {
		return nil, err
	}
	return outBig(out, 0, "appealCost")
}
