package fees

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatehub/libcurate-go/registry"
)

const testArbitrator = "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb"

// depositMock wires a registry and arbitrator mock pair returning the
// given base deposit, arbitration cost and challenge period.
func depositMock(base, arbCost, duration *big.Int) (*MockRegistryReader, ArbitratorDialer) {
	reg := &MockRegistryReader{
		BaseDepositFn: func(ctx context.Context, kind registry.DepositKind) (*big.Int, error) {
			return base, nil
		},
		ArbitratorFn: func(ctx context.Context) (string, error) {
			return testArbitrator, nil
		},
		ArbitratorExtraDataFn: func(ctx context.Context) ([]byte, error) {
			return []byte{}, nil
		},
		ChallengePeriodDurationFn: func(ctx context.Context) (*big.Int, error) {
			return duration, nil
		},
	}
	dial := func(address string) (ArbitratorReader, error) {
		return &MockArbitrator{
			ArbitrationCostFn: func(ctx context.Context, extraData []byte) (*big.Int, error) {
				return arbCost, nil
			},
		}, nil
	}
	return reg, dial
}

func TestDepositAmount(t *testing.T) {
	base, _ := new(big.Int).SetString("1500000000000000000", 10)    // 1.5
	arbCost, _ := new(big.Int).SetString("250000000000000000", 10) // 0.25

	reg, dial := depositMock(base, arbCost, big.NewInt(302400)) // 3.5 days
	engine := NewEngine(reg, dial)

	info, err := engine.DepositAmount(context.Background(), registry.DepositSubmission)
	require.NoError(t, err)

	assert.Equal(t, "1750000000000000000", info.BaseUnits.String())
	assert.Equal(t, "1.75", info.Amount)
	assert.Equal(t, "1.5", info.Breakdown.BaseDeposit)
	assert.Equal(t, "0.25", info.Breakdown.ArbitrationCost)
	assert.Equal(t, "1.75", info.Breakdown.Total)
	assert.Equal(t, uint64(4), info.ChallengePeriodDays)
}

func TestDepositAmountExceeds64Bits(t *testing.T) {
	// Both components above 2^64; the sum must still be exact.
	base, _ := new(big.Int).SetString("100000000000000000000000", 10)
	arbCost, _ := new(big.Int).SetString("200000000000000000000000", 10)

	reg, dial := depositMock(base, arbCost, big.NewInt(secondsPerDay))
	engine := NewEngine(reg, dial)

	info, err := engine.DepositAmount(context.Background(), registry.DepositRemoval)
	require.NoError(t, err)
	assert.Equal(t, "300000000000000000000000", info.BaseUnits.String())
	assert.Equal(t, "300000", info.Amount)
}

func TestDepositAmountReadFailure(t *testing.T) {
	readErr := errors.New("node unreachable")
	reg := &MockRegistryReader{
		BaseDepositFn: func(ctx context.Context, kind registry.DepositKind) (*big.Int, error) {
			return nil, readErr
		},
	}
	engine := NewEngine(reg, nil)

	_, err := engine.DepositAmount(context.Background(), registry.DepositSubmission)
	assert.ErrorIs(t, err, readErr)
}

func TestArbitrationCostInvalidArbitrator(t *testing.T) {
	for _, address := range []string{
		"",
		"0x0000000000000000000000000000000000000000",
		"not-an-address",
	} {
		reg := &MockRegistryReader{
			ArbitratorFn: func(ctx context.Context) (string, error) {
				return address, nil
			},
		}
		engine := NewEngine(reg, func(string) (ArbitratorReader, error) {
			t.Fatal("dial must not be reached for an invalid address")
			return nil, nil
		})

		_, err := engine.ArbitrationCost(context.Background())
		assert.ErrorIs(t, err, ErrInvalidArbitrator, "address %q", address)
	}
}

func TestCeilDays(t *testing.T) {
	cases := []struct {
		seconds int64
		want    uint64
	}{
		{0, 0},
		{1, 1},
		{86399, 1},
		{86400, 1},
		{86401, 2},
		{302400, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ceilDays(big.NewInt(tc.seconds)), "%d seconds", tc.seconds)
	}
	assert.Equal(t, uint64(0), ceilDays(nil))
	assert.Equal(t, uint64(0), ceilDays(big.NewInt(-5)))
}
