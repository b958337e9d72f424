package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/curatehub/libcurate-go/registry"
)

// metaEvidenceTopic identifies ERC-1497 MetaEvidence events in the
// registry's log history.
var metaEvidenceTopic = EventTopic("MetaEvidence(uint256,string)")

// RegistryContract is a typed binding over the registry contract's fixed
// capability set.
type RegistryContract struct {
	caller  Caller
	rpc     *RPCClient
	address string
}

// NewRegistryContract creates a binding for the registry at address.
// rpc may be nil when event-log reads are not needed (e.g. with a mock
// Caller in tests).
func NewRegistryContract(caller Caller, rpc *RPCClient, address string) (*RegistryContract, error) {
	norm, err := registry.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return &RegistryContract{caller: caller, rpc: rpc, address: norm}, nil
}

// Address returns the registry's lowercase contract address.
func (r *RegistryContract) Address() string { return r.address }

// depositMethods maps deposit kinds to their contract getters.
var depositMethods = map[registry.DepositKind]string{
	registry.DepositSubmission:          "submissionBaseDeposit",
	registry.DepositSubmissionChallenge: "submissionChallengeBaseDeposit",
	registry.DepositRemoval:             "removalBaseDeposit",
	registry.DepositRemovalChallenge:    "removalChallengeBaseDeposit",
}

// BaseDeposit returns the base deposit for the given action kind, in base
// units.
func (r *RegistryContract) BaseDeposit(ctx context.Context, kind registry.DepositKind) (*big.Int, error) {
	method, ok := depositMethods[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no deposit getter for %s", ErrUnknownMethod, kind)
	}
	return r.readBig(ctx, method)
}

// ChallengePeriodDuration returns the challenge period length in seconds.
func (r *RegistryContract) ChallengePeriodDuration(ctx context.Context) (*big.Int, error) {
	return r.readBig(ctx, "challengePeriodDuration")
}

// Arbitrator returns the arbitrator contract address.
func (r *RegistryContract) Arbitrator(ctx context.Context) (string, error) {
	out, err := r.caller.Read(ctx, r.address, "arbitrator")
	if err != nil {
		return "", err
	}
	return outString(out, 0, "arbitrator")
}

// ArbitratorExtraData returns the extra data blob passed to the
// arbitrator on every cost query and dispute creation.
func (r *RegistryContract) ArbitratorExtraData(ctx context.Context) ([]byte, error) {
	out, err := r.caller.Read(ctx, r.address, "arbitratorExtraData")
	if err != nil {
		return nil, err
	}
	return outBytes(out, 0, "arbitratorExtraData")
}

// SharedStakeMultiplier returns the stake multiplier applied to both
// sides when there is no ruling yet, in parts per ten thousand.
func (r *RegistryContract) SharedStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return r.readBig(ctx, "sharedStakeMultiplier")
}

// WinnerStakeMultiplier returns the winner-side stake multiplier, in
// parts per ten thousand.
func (r *RegistryContract) WinnerStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return r.readBig(ctx, "winnerStakeMultiplier")
}

// LoserStakeMultiplier returns the loser-side stake multiplier, in parts
// per ten thousand.
func (r *RegistryContract) LoserStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return r.readBig(ctx, "loserStakeMultiplier")
}

// ItemInfo returns the on-chain status and request count of an item.
func (r *RegistryContract) ItemInfo(ctx context.Context, itemID string) (*registry.ItemInfo, error) {
	out, err := r.caller.Read(ctx, r.address, "getItemInfo", itemID)
	if err != nil {
		return nil, err
	}
	status, err := outUint8(out, 0, "getItemInfo")
	if err != nil {
		return nil, err
	}
	count, err := outBig(out, 1, "getItemInfo")
	if err != nil {
		return nil, err
	}
	return &registry.ItemInfo{
		Status:           registry.Status(status),
		NumberOfRequests: count.Uint64(),
	}, nil
}

// RequestInfo returns the on-chain view of one request, including its
// dispute state. This is the engine's read channel; it does not touch the
// indexer.
func (r *RegistryContract) RequestInfo(ctx context.Context, itemID string, requestID uint64) (*registry.RequestInfo, error) {
	out, err := r.caller.Read(ctx, r.address, "getRequestInfo", itemID, requestID)
	if err != nil {
		return nil, err
	}
	if len(out) != 9 {
		return nil, fmt.Errorf("%w: getRequestInfo: want 9 outputs, got %d", ErrDecoding, len(out))
	}

	disputed, err := outBool(out, 0, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	disputeID, err := outBig(out, 1, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	rounds, err := outBig(out, 2, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	resolved, err := outBool(out, 3, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	requester, err := outString(out, 4, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	challenger, err := outString(out, 5, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	arb, err := outString(out, 6, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	extraData, err := outBytes(out, 7, "getRequestInfo")
	if err != nil {
		return nil, err
	}
	ruling, err := outUint8(out, 8, "getRequestInfo")
	if err != nil {
		return nil, err
	}

	return &registry.RequestInfo{
		Disputed:            disputed,
		DisputeID:           disputeID,
		NumberOfRounds:      rounds.Uint64(),
		Resolved:            resolved,
		Requester:           requester,
		Challenger:          challenger,
		Arbitrator:          arb,
		ArbitratorExtraData: extraData,
		CurrentRuling:       registry.Ruling(ruling),
	}, nil
}

// RoundInfo returns the on-chain view of one arbitration round.
func (r *RegistryContract) RoundInfo(ctx context.Context, itemID string, requestID, roundID uint64) (*registry.RoundInfo, error) {
	out, err := r.caller.Read(ctx, r.address, "getRoundInfo", itemID, requestID, roundID)
	if err != nil {
		return nil, err
	}
	if len(out) != 6 {
		return nil, fmt.Errorf("%w: getRoundInfo: want 6 outputs, got %d", ErrDecoding, len(out))
	}

	appealed, err := outBool(out, 0, "getRoundInfo")
	if err != nil {
		return nil, err
	}
	paidRequester, err := outBig(out, 1, "getRoundInfo")
	if err != nil {
		return nil, err
	}
	paidChallenger, err := outBig(out, 2, "getRoundInfo")
	if err != nil {
		return nil, err
	}
	hasPaidRequester, err := outBool(out, 3, "getRoundInfo")
	if err != nil {
		return nil, err
	}
	hasPaidChallenger, err := outBool(out, 4, "getRoundInfo")
	if err != nil {
		return nil, err
	}
	feeRewards, err := outBig(out, 5, "getRoundInfo")
	if err != nil {
		return nil, err
	}

	return &registry.RoundInfo{
		Appealed:             appealed,
		AmountPaidRequester:  paidRequester,
		AmountPaidChallenger: paidChallenger,
		HasPaidRequester:     hasPaidRequester,
		HasPaidChallenger:    hasPaidChallenger,
		FeeRewards:           feeRewards,
	}, nil
}

// LatestMetaEvidence returns the URI of the most recently emitted
// MetaEvidence event, or an empty string if none has been emitted.
func (r *RegistryContract) LatestMetaEvidence(ctx context.Context) (string, error) {
	if r.rpc == nil {
		return "", fmt.Errorf("%w: LatestMetaEvidence: no rpc client", ErrReadFailed)
	}
	payloads, err := r.rpc.Logs(ctx, r.address, metaEvidenceTopic)
	if err != nil {
		return "", fmt.Errorf("%w: MetaEvidence logs: %w", ErrReadFailed, err)
	}
	if len(payloads) == 0 {
		return "", nil
	}
	uri, err := decodeDynamicString(payloads[len(payloads)-1])
	if err != nil {
		return "", fmt.Errorf("%w: MetaEvidence data: %w", ErrReadFailed, err)
	}
	return uri, nil
}

// AddItem submits a new item with the given data URI, attaching the
// submission deposit as the value transfer.
func (r *RegistryContract) AddItem(ctx context.Context, dataURI string, value *big.Int) (string, error) {
	return r.caller.Write(ctx, r.address, "addItem", value, dataURI)
}

// RemoveItem requests the removal of an item, attaching the removal
// deposit as the value transfer.
func (r *RegistryContract) RemoveItem(ctx context.Context, itemID, evidenceURI string, value *big.Int) (string, error) {
	return r.caller.Write(ctx, r.address, "removeItem", value, itemID, evidenceURI)
}

// ChallengeRequest challenges the item's pending request, attaching the
// challenge deposit as the value transfer.
func (r *RegistryContract) ChallengeRequest(ctx context.Context, itemID, evidenceURI string, value *big.Int) (string, error) {
	return r.caller.Write(ctx, r.address, "challengeRequest", value, itemID, evidenceURI)
}

// SubmitEvidence attaches evidence to the item's latest request.
func (r *RegistryContract) SubmitEvidence(ctx context.Context, itemID, evidenceURI string) (string, error) {
	return r.caller.Write(ctx, r.address, "submitEvidence", nil, itemID, evidenceURI)
}

// FundAppeal contributes value toward the appeal of the item's latest
// round, on behalf of side.
func (r *RegistryContract) FundAppeal(ctx context.Context, itemID string, side registry.Side, value *big.Int) (string, error) {
	return r.caller.Write(ctx, r.address, "fundAppeal", value, itemID, uint8(side))
}

// Contribute contributes value toward a side's crowdfunded fees without
// requiring the full remaining amount.
func (r *RegistryContract) Contribute(ctx context.Context, itemID string, side registry.Side, value *big.Int) (string, error) {
	return r.caller.Write(ctx, r.address, "contribute", value, itemID, uint8(side))
}

// readBig executes a no-argument getter returning a single uint256.
func (r *RegistryContract) readBig(ctx context.Context, method string) (*big.Int, error) {
	out, err := r.caller.Read(ctx, r.address, method)
	if err != nil {
		return nil, err
	}
	return outBig(out, 0, method)
}

// decodeDynamicString decodes a single ABI-encoded dynamic string from an
// event data payload.
func decodeDynamicString(data []byte) (string, error) {
	word, err := wordAt(data, 0)
	if err != nil {
		return "", err
	}
	v, err := decodeDynamicAt(typeString, data, word)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Output coercion helpers. Read returns []interface{}; these narrow the
// values with a uniform error shape.

func outBig(out []interface{}, i int, method string) (*big.Int, error) {
	if i >= len(out) {
		return nil, fmt.Errorf("%w: %s: missing output %d", ErrDecoding, method, i)
	}
	n, ok := out[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s output %d: want *big.Int, got %T", ErrDecoding, method, i, out[i])
	}
	return n, nil
}

func outString(out []interface{}, i int, method string) (string, error) {
	if i >= len(out) {
		return "", fmt.Errorf("%w: %s: missing output %d", ErrDecoding, method, i)
	}
	s, ok := out[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s output %d: want string, got %T", ErrDecoding, method, i, out[i])
	}
	return s, nil
}

func outBool(out []interface{}, i int, method string) (bool, error) {
	if i >= len(out) {
		return false, fmt.Errorf("%w: %s: missing output %d", ErrDecoding, method, i)
	}
	b, ok := out[i].(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s output %d: want bool, got %T", ErrDecoding, method, i, out[i])
	}
	return b, nil
}

func outBytes(out []interface{}, i int, method string) ([]byte, error) {
	if i >= len(out) {
		return nil, fmt.Errorf("%w: %s: missing output %d", ErrDecoding, method, i)
	}
	b, ok := out[i].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s output %d: want []byte, got %T", ErrDecoding, method, i, out[i])
	}
	return b, nil
}

func outUint8(out []interface{}, i int, method string) (uint8, error) {
	if i >= len(out) {
		return 0, fmt.Errorf("%w: %s: missing output %d", ErrDecoding, method, i)
	}
	n, ok := out[i].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: %s output %d: want uint8, got %T", ErrDecoding, method, i, out[i])
	}
	return n, nil
}
