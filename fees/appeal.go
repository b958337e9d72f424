package fees

import (
	"context"
	"fmt"
	"math/big"

	"github.com/curatehub/libcurate-go/registry"
)

// AppealCost is the fee each side must deposit to fund an appeal of the
// current round. Fees are ruling-dependent: the side currently losing
// posts a larger stake than the side currently winning.
type AppealCost struct {
	// RequesterFee and ChallengerFee are display-unit forms of the
	// base-unit fields below, for UI rendering only.
	RequesterFee  string `json:"requester_fee"`
	ChallengerFee string `json:"challenger_fee"`

	// RequesterFeeBaseUnits and ChallengerFeeBaseUnits are the values of
	// record, in base units.
	RequesterFeeBaseUnits  *big.Int `json:"requester_fee_base_units"`
	ChallengerFeeBaseUnits *big.Int `json:"challenger_fee_base_units"`

	// Ruling is the arbitrator's current ruling the split was derived from.
	Ruling registry.Ruling `json:"ruling"`
}

// SideFunding is the appeal funding state of one side in the current round.
type SideFunding struct {
	// Required is the side's full appeal fee in base units.
	Required *big.Int `json:"required"`
	// Paid is the amount already contributed in base units.
	Paid *big.Int `json:"paid"`
	// Remaining is max(0, Required-Paid). A side never owes a negative
	// amount, even if overpaid.
	Remaining *big.Int `json:"remaining"`
	// FullyFunded is the contract's own fully-funded flag for the side.
	FullyFunded bool `json:"fully_funded"`
}

// AppealFundingStatus is the complete funding picture of the current
// round of a disputed request.
type AppealFundingStatus struct {
	RoundIndex uint64      `json:"round_index"`
	Requester  SideFunding `json:"requester"`
	Challenger SideFunding `json:"challenger"`
	Ruling     registry.Ruling
}

// AppealCost computes the fee each side owes to appeal the dispute on
// (itemID, requestID). Fails with ErrNotDisputed if the request has no
// active dispute.
//
// Each side's fee is appealCost + appealCost*multiplier/MultiplierDivisor
// with the multiplication performed before the truncating division, in
// arbitrary precision, so no truncation-order bugs can occur. Which
// multiplier applies to which side depends on the current ruling.
func (e *Engine) AppealCost(ctx context.Context, itemID string, requestID uint64) (*AppealCost, error) {
	cost, _, err := e.appealCost(ctx, itemID, requestID)
	return cost, err
}

// appealCost computes the fee split and also returns the request info it
// was derived from, so AppealFundingStatus avoids a duplicate read.
func (e *Engine) appealCost(ctx context.Context, itemID string, requestID uint64) (*AppealCost, *registry.RequestInfo, error) {
	req, err := e.reg.RequestInfo(ctx, itemID, requestID)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: request info: %w", err)
	}
	if !req.Disputed {
		return nil, nil, fmt.Errorf("%w: item %s request %d", ErrNotDisputed, itemID, requestID)
	}

	arb, err := e.dialArbitrator(req.Arbitrator)
	if err != nil {
		return nil, nil, err
	}

	baseCost, err := arb.AppealCost(ctx, req.DisputeID, req.ArbitratorExtraData)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: appeal cost: %w", err)
	}

	shared, err := e.reg.SharedStakeMultiplier(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: shared stake multiplier: %w", err)
	}
	winner, err := e.reg.WinnerStakeMultiplier(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: winner stake multiplier: %w", err)
	}
	loser, err := e.reg.LoserStakeMultiplier(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fees: loser stake multiplier: %w", err)
	}

	var requesterFee, challengerFee *big.Int
	switch req.CurrentRuling {
	case registry.RulingAccept:
		// Requester currently winning.
		requesterFee = feeWithStake(baseCost, winner)
		challengerFee = feeWithStake(baseCost, loser)
	case registry.RulingReject:
		// Challenger currently winning.
		requesterFee = feeWithStake(baseCost, loser)
		challengerFee = feeWithStake(baseCost, winner)
	default:
		requesterFee = feeWithStake(baseCost, shared)
		challengerFee = feeWithStake(baseCost, shared)
	}

	return &AppealCost{
		RequesterFee:           FormatUnits(requesterFee, e.decimals),
		ChallengerFee:          FormatUnits(challengerFee, e.decimals),
		RequesterFeeBaseUnits:  requesterFee,
		ChallengerFeeBaseUnits: challengerFee,
		Ruling:                 req.CurrentRuling,
	}, req, nil
}

// AppealFundingStatus reports, for each side of the dispute on
// (itemID, requestID), the required appeal fee, the amount already
// contributed in the current round, and the remaining amount owed.
// Fails with ErrNotDisputed under the same condition as AppealCost.
func (e *Engine) AppealFundingStatus(ctx context.Context, itemID string, requestID uint64) (*AppealFundingStatus, error) {
	cost, req, err := e.appealCost(ctx, itemID, requestID)
	if err != nil {
		return nil, err
	}

	if req.NumberOfRounds == 0 {
		return nil, fmt.Errorf("%w: item %s request %d has no rounds", ErrNotDisputed, itemID, requestID)
	}
	roundIndex := req.NumberOfRounds - 1

	round, err := e.reg.RoundInfo(ctx, itemID, requestID, roundIndex)
	if err != nil {
		return nil, fmt.Errorf("fees: round info: %w", err)
	}

	return &AppealFundingStatus{
		RoundIndex: roundIndex,
		Requester: SideFunding{
			Required:    cost.RequesterFeeBaseUnits,
			Paid:        round.AmountPaidRequester,
			Remaining:   remaining(cost.RequesterFeeBaseUnits, round.AmountPaidRequester),
			FullyFunded: round.HasPaidRequester,
		},
		Challenger: SideFunding{
			Required:    cost.ChallengerFeeBaseUnits,
			Paid:        round.AmountPaidChallenger,
			Remaining:   remaining(cost.ChallengerFeeBaseUnits, round.AmountPaidChallenger),
			FullyFunded: round.HasPaidChallenger,
		},
		Ruling: cost.Ruling,
	}, nil
}

// FundAppeal contributes toward side's appeal fee for the dispute on
// (itemID, requestID) and returns the transaction hash.
//
// A nil amount sends exactly the side's remaining requirement. An amount
// exceeding the remaining requirement is clamped down to it, so the
// contract is never overpaid. If the side is already fully funded,
// FundAppeal fails with ErrAlreadyFunded without submitting a transaction.
//
// The remaining requirement and the eventual on-chain state are read in
// separate transactions; if another party funds in between, the
// submission is left to fail or refund on-chain.
func (e *Engine) FundAppeal(ctx context.Context, itemID string, requestID uint64, side registry.Side, amount *big.Int) (string, error) {
	status, err := e.AppealFundingStatus(ctx, itemID, requestID)
	if err != nil {
		return "", err
	}

	var funding SideFunding
	switch side {
	case registry.SideRequester:
		funding = status.Requester
	case registry.SideChallenger:
		funding = status.Challenger
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}

	if funding.Remaining.Sign() == 0 {
		return "", fmt.Errorf("%w: %s on item %s request %d", ErrAlreadyFunded, side, itemID, requestID)
	}

	send := funding.Remaining
	if amount != nil && amount.Cmp(funding.Remaining) < 0 {
		send = amount
	}

	txHash, err := e.reg.FundAppeal(ctx, itemID, side, send)
	if err != nil {
		return "", fmt.Errorf("fees: fund appeal: %w", err)
	}
	return txHash, nil
}

// feeWithStake returns cost + cost*multiplier/MultiplierDivisor with the
// multiplication performed first, in arbitrary precision.
func feeWithStake(cost, multiplier *big.Int) *big.Int {
	stake := new(big.Int).Mul(cost, multiplier)
	stake.Quo(stake, big.NewInt(MultiplierDivisor))
	return stake.Add(stake, cost)
}

// remaining returns max(0, required-paid).
func remaining(required, paid *big.Int) *big.Int {
	if required == nil {
		return new(big.Int)
	}
	if paid == nil {
		return new(big.Int).Set(required)
	}
	diff := new(big.Int).Sub(required, paid)
	if diff.Sign() < 0 {
		return new(big.Int)
	}
	return diff
}
