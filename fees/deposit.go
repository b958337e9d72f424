package fees

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/curatehub/libcurate-go/registry"
)

// Breakdown itemizes a deposit in display units. The base-unit total in
// DepositInfo.BaseUnits is the value of record for any transaction; the
// breakdown exists only for human display.
type Breakdown struct {
	BaseDeposit     string `json:"base_deposit"`
	ArbitrationCost string `json:"arbitration_cost"`
	Total           string `json:"total"`
}

// DepositInfo is the computed deposit for one registry action. It is
// never cached: base deposit and arbitration cost can change between
// calls.
type DepositInfo struct {
	// Amount is the total deposit in display units.
	Amount string `json:"amount"`
	// BaseUnits is the total deposit in base units.
	BaseUnits *big.Int `json:"base_units"`
	// Breakdown itemizes the total for display.
	Breakdown Breakdown `json:"breakdown"`
	// ChallengePeriodDays is the challenge period rounded up to whole
	// days: any partial day counts as a full day.
	ChallengePeriodDays uint64 `json:"challenge_period_days"`
}

// DepositAmount computes the deposit required for the given action kind:
// the kind's base deposit plus the arbitrator's current arbitration cost,
// added exactly in base units. Any failed contract read aborts the whole
// computation; no retries are attempted here.
func (e *Engine) DepositAmount(ctx context.Context, kind registry.DepositKind) (*DepositInfo, error) {
	base, err := e.reg.BaseDeposit(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fees: %s base deposit: %w", kind, err)
	}

	arbCost, err := e.ArbitrationCost(ctx)
	if err != nil {
		return nil, err
	}

	total := new(big.Int).Add(base, arbCost)

	duration, err := e.reg.ChallengePeriodDuration(ctx)
	if err != nil {
		return nil, fmt.Errorf("fees: challenge period duration: %w", err)
	}

	return &DepositInfo{
		Amount:    FormatUnits(total, e.decimals),
		BaseUnits: total,
		Breakdown: Breakdown{
			BaseDeposit:     FormatUnits(base, e.decimals),
			ArbitrationCost: FormatUnits(arbCost, e.decimals),
			Total:           FormatUnits(total, e.decimals),
		},
		ChallengePeriodDays: ceilDays(duration),
	}, nil
}

// ArbitrationCost reads the arbitrator address and extra data from the
// registry, then asks the arbitrator for its current arbitration cost in
// base units.
func (e *Engine) ArbitrationCost(ctx context.Context) (*big.Int, error) {
	arb, extraData, err := e.arbitrator(ctx)
	if err != nil {
		return nil, err
	}
	cost, err := arb.ArbitrationCost(ctx, extraData)
	if err != nil {
		return nil, fmt.Errorf("fees: arbitration cost: %w", err)
	}
	return cost, nil
}

// arbitrator resolves the registry's current arbitrator and extra data.
func (e *Engine) arbitrator(ctx context.Context) (ArbitratorReader, []byte, error) {
	address, err := e.reg.Arbitrator(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: arbitrator address: %w", err)
	}
	arb, err := e.dialArbitrator(address)
	if err != nil {
		return nil, nil, err
	}

	extraData, err := e.reg.ArbitratorExtraData(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: arbitrator extra data: %w", err)
	}
	return arb, extraData, nil
}

// dialArbitrator validates an arbitrator address and opens a reader for it.
func (e *Engine) dialArbitrator(address string) (ArbitratorReader, error) {
	if address == "" || isZeroAddress(address) || !registry.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidArbitrator, address)
	}
	arb, err := e.dial(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidArbitrator, address, err)
	}
	return arb, nil
}

// isZeroAddress reports whether s is the all-zero address.
func isZeroAddress(s string) bool {
	return strings.TrimLeft(strings.TrimPrefix(strings.ToLower(s), "0x"), "0") == "" && len(s) > 2
}

// ceilDays converts a duration in seconds to whole days, rounding up.
func ceilDays(seconds *big.Int) uint64 {
	if seconds == nil || seconds.Sign() <= 0 {
		return 0
	}
	days := new(big.Int).Add(seconds, big.NewInt(secondsPerDay-1))
	days.Quo(days, big.NewInt(secondsPerDay))
	return days.Uint64()
}
