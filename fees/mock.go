package fees

import (
	"context"
	"math/big"

	"github.com/curatehub/libcurate-go/registry"
)

// MockRegistryReader is a test double for RegistryReader.
// All function fields must be set before the corresponding method is called.
type MockRegistryReader struct {
	BaseDepositFn             func(ctx context.Context, kind registry.DepositKind) (*big.Int, error)
	ChallengePeriodDurationFn func(ctx context.Context) (*big.Int, error)
	ArbitratorFn              func(ctx context.Context) (string, error)
	ArbitratorExtraDataFn     func(ctx context.Context) ([]byte, error)
	SharedStakeMultiplierFn   func(ctx context.Context) (*big.Int, error)
	WinnerStakeMultiplierFn   func(ctx context.Context) (*big.Int, error)
	LoserStakeMultiplierFn    func(ctx context.Context) (*big.Int, error)
	RequestInfoFn             func(ctx context.Context, itemID string, requestID uint64) (*registry.RequestInfo, error)
	RoundInfoFn               func(ctx context.Context, itemID string, requestID, roundID uint64) (*registry.RoundInfo, error)
	FundAppealFn              func(ctx context.Context, itemID string, side registry.Side, value *big.Int) (string, error)
}

// Compile-time interface check.
var _ RegistryReader = (*MockRegistryReader)(nil)

func (m *MockRegistryReader) BaseDeposit(ctx context.Context, kind registry.DepositKind) (*big.Int, error) {
	return m.BaseDepositFn(ctx, kind)
}
func (m *MockRegistryReader) ChallengePeriodDuration(ctx context.Context) (*big.Int, error) {
	return m.ChallengePeriodDurationFn(ctx)
}
func (m *MockRegistryReader) Arbitrator(ctx context.Context) (string, error) {
	return m.ArbitratorFn(ctx)
}
func (m *MockRegistryReader) ArbitratorExtraData(ctx context.Context) ([]byte, error) {
	return m.ArbitratorExtraDataFn(ctx)
}
func (m *MockRegistryReader) SharedStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return m.SharedStakeMultiplierFn(ctx)
}
func (m *MockRegistryReader) WinnerStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return m.WinnerStakeMultiplierFn(ctx)
}
func (m *MockRegistryReader) LoserStakeMultiplier(ctx context.Context) (*big.Int, error) {
	return m.LoserStakeMultiplierFn(ctx)
}
func (m *MockRegistryReader) RequestInfo(ctx context.Context, itemID string, requestID uint64) (*registry.RequestInfo, error) {
	return m.RequestInfoFn(ctx, itemID, requestID)
}
func (m *MockRegistryReader) RoundInfo(ctx context.Context, itemID string, requestID, roundID uint64) (*registry.RoundInfo, error) {
	return m.RoundInfoFn(ctx, itemID, requestID, roundID)
}
func (m *MockRegistryReader) FundAppeal(ctx context.Context, itemID string, side registry.Side, value *big.Int) (string, error) {
	return m.FundAppealFn(ctx, itemID, side, value)
}

// MockArbitrator is a test double for ArbitratorReader.
type MockArbitrator struct {
	ArbitrationCostFn func(ctx context.Context, extraData []byte) (*big.Int, error)
	AppealCostFn      func(ctx context.Context, disputeID *big.Int, extraData []byte) (*big.Int, error)
}

// Compile-time interface check.
var _ ArbitratorReader = (*MockArbitrator)(nil)

func (m *MockArbitrator) ArbitrationCost(ctx context.Context, extraData []byte) (*big.Int, error) {
	return m.ArbitrationCostFn(ctx, extraData)
}
func (m *MockArbitrator) AppealCost(ctx context.Context, disputeID *big.Int, extraData []byte) (*big.Int, error) {
	return m.AppealCostFn(ctx, disputeID, extraData)
}
