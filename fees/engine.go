// Package fees is the financial calculation engine of the SDK. It
// computes the deposits required for registry actions and the
// ruling-dependent cost of funding appeals, using exact integer
// arithmetic throughout. Values routinely exceed 64 bits, so every
// monetary quantity is a big.Int in base units; display-unit strings are
// derived from base units and never the reverse.
package fees

import (
	"context"
	"math/big"

	"github.com/curatehub/libcurate-go/registry"
)

// MultiplierDivisor is the denominator of all stake multipliers: a
// multiplier of 10000 means one full extra arbitration cost.
const MultiplierDivisor = 10000

// secondsPerDay converts the contract's challenge period duration.
const secondsPerDay = 86400

// RegistryReader is the slice of the registry contract capability the
// engine consumes. *chain.RegistryContract satisfies it; tests use
// MockRegistryReader.
type RegistryReader interface {
	BaseDeposit(ctx context.Context, kind registry.DepositKind) (*big.Int, error)
	ChallengePeriodDuration(ctx context.Context) (*big.Int, error)
	Arbitrator(ctx context.Context) (string, error)
	ArbitratorExtraData(ctx context.Context) ([]byte, error)
	SharedStakeMultiplier(ctx context.Context) (*big.Int, error)
	WinnerStakeMultiplier(ctx context.Context) (*big.Int, error)
	LoserStakeMultiplier(ctx context.Context) (*big.Int, error)
	RequestInfo(ctx context.Context, itemID string, requestID uint64) (*registry.RequestInfo, error)
	RoundInfo(ctx context.Context, itemID string, requestID, roundID uint64) (*registry.RoundInfo, error)
	FundAppeal(ctx context.Context, itemID string, side registry.Side, value *big.Int) (string, error)
}

// ArbitratorReader exposes an arbitrator contract's cost schedule.
type ArbitratorReader interface {
	ArbitrationCost(ctx context.Context, extraData []byte) (*big.Int, error)
	AppealCost(ctx context.Context, disputeID *big.Int, extraData []byte) (*big.Int, error)
}

// ArbitratorDialer creates an ArbitratorReader for a dynamically
// discovered arbitrator address.
type ArbitratorDialer func(address string) (ArbitratorReader, error)

// Engine computes deposit and appeal amounts for one registry. It holds
// no state and caches nothing: base deposits and arbitration costs can
// change between calls, so every result is derived fresh.
type Engine struct {
	reg      RegistryReader
	dial     ArbitratorDialer
	decimals int
}

// Option configures an Engine.
type Option func(*Engine)

// WithDecimals sets the native decimal count used for display-unit
// conversion. Defaults to 18.
func WithDecimals(n int) Option {
	return func(e *Engine) { e.decimals = n }
}

// NewEngine creates an engine over the given registry reader. dial is
// used to reach arbitrator contracts discovered from registry state.
func NewEngine(reg RegistryReader, dial ArbitratorDialer, opts ...Option) *Engine {
	e := &Engine{reg: reg, dial: dial, decimals: 18}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
