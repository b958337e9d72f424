package chain

import (
	"context"
	"math/big"
)

// MockCaller is a test double for Caller.
// All function fields must be set before the corresponding method is called.
type MockCaller struct {
	ReadFn  func(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error)
	WriteFn func(ctx context.Context, contract, method string, value *big.Int, args ...interface{}) (string, error)
}

func (m *MockCaller) Read(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
	return m.ReadFn(ctx, contract, method, args...)
}

func (m *MockCaller) Write(ctx context.Context, contract, method string, value *big.Int, args ...interface{}) (string, error) {
	return m.WriteFn(ctx, contract, method, value, args...)
}

// MockSender is a test double for Sender.
type MockSender struct {
	SendTransactionFn func(ctx context.Context, tx *TxRequest) (string, error)
}

func (m *MockSender) SendTransaction(ctx context.Context, tx *TxRequest) (string, error) {
	return m.SendTransactionFn(ctx, tx)
}
