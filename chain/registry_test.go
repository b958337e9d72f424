package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatehub/libcurate-go/registry"
)

var testItemID = "0x01" + strings.Repeat("0", 62)

func newTestRegistry(t *testing.T, caller Caller) *RegistryContract {
	t.Helper()
	reg, err := NewRegistryContract(caller, nil, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	return reg
}

func TestNewRegistryContractNormalizesAddress(t *testing.T) {
	reg := newTestRegistry(t, &MockCaller{})
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", reg.Address())
}

func TestNewRegistryContractInvalidAddress(t *testing.T) {
	_, err := NewRegistryContract(&MockCaller{}, nil, "0x123")
	assert.ErrorIs(t, err, registry.ErrInvalidAddress)
}

func TestBaseDepositMethodSelection(t *testing.T) {
	wantMethods := map[registry.DepositKind]string{
		registry.DepositSubmission:          "submissionBaseDeposit",
		registry.DepositSubmissionChallenge: "submissionChallengeBaseDeposit",
		registry.DepositRemoval:             "removalBaseDeposit",
		registry.DepositRemovalChallenge:    "removalChallengeBaseDeposit",
	}

	for kind, want := range wantMethods {
		var gotMethod string
		caller := &MockCaller{
			ReadFn: func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
				gotMethod = method
				return []interface{}{big.NewInt(5)}, nil
			},
		}
		reg := newTestRegistry(t, caller)

		deposit, err := reg.BaseDeposit(context.Background(), kind)
		require.NoError(t, err)
		assert.Equal(t, want, gotMethod)
		assert.Equal(t, int64(5), deposit.Int64())
	}
}

func TestRequestInfoCoercion(t *testing.T) {
	caller := &MockCaller{
		ReadFn: func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
			assert.Equal(t, "getRequestInfo", method)
			require.Len(t, args, 2)
			assert.Equal(t, testItemID, args[0])
			assert.Equal(t, uint64(0), args[1])
			return []interface{}{
				true,            // disputed
				big.NewInt(77),  // disputeID
				big.NewInt(2),   // numberOfRounds
				false,           // resolved
				"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", // requester
				"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", // challenger
				"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb", // arbitrator
				[]byte{0x01},  // extraData
				uint8(2),      // currentRuling
			}, nil
		},
	}
	reg := newTestRegistry(t, caller)

	info, err := reg.RequestInfo(context.Background(), testItemID, 0)
	require.NoError(t, err)
	assert.True(t, info.Disputed)
	assert.Equal(t, int64(77), info.DisputeID.Int64())
	assert.Equal(t, uint64(2), info.NumberOfRounds)
	assert.False(t, info.Resolved)
	assert.Equal(t, "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb", info.Arbitrator)
	assert.Equal(t, []byte{0x01}, info.ArbitratorExtraData)
	assert.Equal(t, registry.RulingReject, info.CurrentRuling)
}

func TestRequestInfoWrongShape(t *testing.T) {
	caller := &MockCaller{
		ReadFn: func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
			return []interface{}{true}, nil
		},
	}
	reg := newTestRegistry(t, caller)

	_, err := reg.RequestInfo(context.Background(), testItemID, 0)
	assert.ErrorIs(t, err, ErrDecoding)
}

func TestRoundInfoCoercion(t *testing.T) {
	caller := &MockCaller{
		ReadFn: func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
			assert.Equal(t, "getRoundInfo", method)
			return []interface{}{
				false,
				big.NewInt(100), big.NewInt(200),
				true, false,
				big.NewInt(300),
			}, nil
		},
	}
	reg := newTestRegistry(t, caller)

	round, err := reg.RoundInfo(context.Background(), testItemID, 0, 1)
	require.NoError(t, err)
	assert.False(t, round.Appealed)
	assert.Equal(t, int64(100), round.AmountPaidRequester.Int64())
	assert.Equal(t, int64(200), round.AmountPaidChallenger.Int64())
	assert.True(t, round.HasPaidRequester)
	assert.False(t, round.HasPaidChallenger)
	assert.Equal(t, int64(300), round.FeeRewards.Int64())
}

func TestItemInfo(t *testing.T) {
	caller := &MockCaller{
		ReadFn: func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
			assert.Equal(t, "getItemInfo", method)
			return []interface{}{uint8(2), big.NewInt(3)}, nil
		},
	}
	reg := newTestRegistry(t, caller)

	info, err := reg.ItemInfo(context.Background(), testItemID)
	require.NoError(t, err)
	assert.Equal(t, registry.StatusRegistrationRequested, info.Status)
	assert.Equal(t, uint64(3), info.NumberOfRequests)
}

func TestFundAppealWrite(t *testing.T) {
	value := big.NewInt(12345)
	caller := &MockCaller{
		WriteFn: func(ctx context.Context, contract, method string, v *big.Int, args ...interface{}) (string, error) {
			assert.Equal(t, "fundAppeal", method)
			assert.Equal(t, 0, value.Cmp(v))
			require.Len(t, args, 2)
			assert.Equal(t, testItemID, args[0])
			assert.Equal(t, uint8(registry.SideChallenger), args[1])
			return "0xtxhash", nil
		},
	}
	reg := newTestRegistry(t, caller)

	hash, err := reg.FundAppeal(context.Background(), testItemID, registry.SideChallenger, value)
	require.NoError(t, err)
	assert.Equal(t, "0xtxhash", hash)
}

func TestSubmitEvidenceNoValue(t *testing.T) {
	caller := &MockCaller{
		WriteFn: func(ctx context.Context, contract, method string, v *big.Int, args ...interface{}) (string, error) {
			assert.Equal(t, "submitEvidence", method)
			assert.Nil(t, v)
			return "0xtxhash", nil
		},
	}
	reg := newTestRegistry(t, caller)

	_, err := reg.SubmitEvidence(context.Background(), testItemID, "/ipfs/QmEv/evidence.json")
	require.NoError(t, err)
}

func TestLatestMetaEvidenceRequiresRPC(t *testing.T) {
	reg := newTestRegistry(t, &MockCaller{})
	_, err := reg.LatestMetaEvidence(context.Background())
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestLatestMetaEvidence(t *testing.T) {
	// The metaEvidenceID is indexed, so log data carries only the
	// ABI-encoded evidence string.
	older, err := encodeArgs([]argType{typeString}, []interface{}{"/ipfs/QmOld/meta.json"})
	require.NoError(t, err)
	latest, err := encodeArgs([]argType{typeString}, []interface{}{"/ipfs/QmMeta/meta-evidence.json"})
	require.NoError(t, err)

	server := rpcServer(t, map[string]string{
		"eth_getLogs": fmt.Sprintf(`[{"data":"0x%s"},{"data":"0x%s"}]`,
			hex.EncodeToString(older), hex.EncodeToString(latest)),
	})
	defer server.Close()

	rpc := NewRPCClient(server.URL)
	reg, err := NewRegistryContract(&MockCaller{}, rpc, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)

	uri, err := reg.LatestMetaEvidence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/ipfs/QmMeta/meta-evidence.json", uri)
}

func TestLatestMetaEvidenceNoEvents(t *testing.T) {
	server := rpcServer(t, map[string]string{"eth_getLogs": `[]`})
	defer server.Close()

	reg, err := NewRegistryContract(&MockCaller{}, NewRPCClient(server.URL), "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)

	uri, err := reg.LatestMetaEvidence(context.Background())
	require.NoError(t, err)
	assert.Empty(t, uri)
}
