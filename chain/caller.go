package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// Gas estimates are inflated by 20% before submission so that transactions
// whose cost shifts slightly between estimation and inclusion still land.
const (
	gasBufferNum = 120
	gasBufferDen = 100
)

// Caller is the opaque contract capability consumed by the rest of the
// SDK: read named state getters, invoke named mutators with a value
// transfer. Keeping the boundary this narrow lets tests substitute a mock
// and keeps the financial engine independent of any transport.
type Caller interface {
	// Read executes a named state getter on the contract and returns its
	// decoded outputs in declaration order.
	Read(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error)

	// Write invokes a named mutator on the contract with the given value
	// transfer in base units and returns the transaction hash.
	Write(ctx context.Context, contract, method string, value *big.Int, args ...interface{}) (string, error)
}

// TxRequest describes a transaction handed to a Sender for signing and
// submission. GasLimit already includes the 20% safety buffer.
type TxRequest struct {
	To       string
	Data     []byte
	Value    *big.Int
	GasLimit uint64
}

// Sender signs and submits a transaction, returning its hash. The SDK
// owns no keys; wallet integrations implement this interface. A Sender
// must return an error wrapping ErrUserRejected when the signer
// explicitly declines, so callers can tell rejection from failure.
type Sender interface {
	SendTransaction(ctx context.Context, tx *TxRequest) (string, error)
}

// EthCaller implements Caller over Ethereum JSON-RPC. Reads go through
// eth_call; writes are gas-estimated, buffered, and delegated to the
// configured Sender.
type EthCaller struct {
	rpc    *RPCClient
	sender Sender
	from   string
}

// Compile-time interface check.
var _ Caller = (*EthCaller)(nil)

// EthCallerOption configures an EthCaller.
type EthCallerOption func(*EthCaller)

// WithSender sets the transaction sender used for writes. from is the
// sender's account address, used for gas estimation.
func WithSender(sender Sender, from string) EthCallerOption {
	return func(c *EthCaller) {
		c.sender = sender
		c.from = from
	}
}

// NewEthCaller creates a Caller backed by the given JSON-RPC client.
// Without WithSender the caller is read-only; writes fail with ErrNoSender.
func NewEthCaller(rpc *RPCClient, opts ...EthCallerOption) *EthCaller {
	c := &EthCaller{rpc: rpc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read executes a named state getter via eth_call. Any failure is wrapped
// in ErrReadFailed; no retries are attempted at this layer.
func (c *EthCaller) Read(ctx context.Context, contract, method string, args ...interface{}) ([]interface{}, error) {
	data, err := encodeCall(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, method, err)
	}

	ret, err := c.rpc.CallContract(ctx, contract, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, method, err)
	}

	out, err := decodeReturn(method, ret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, method, err)
	}
	return out, nil
}

// Write invokes a named mutator. The gas limit is the node's estimate
// inflated by 20%. Errors are wrapped in ErrWriteFailed; an explicit
// signer rejection additionally satisfies errors.Is(err, ErrUserRejected).
func (c *EthCaller) Write(ctx context.Context, contract, method string, value *big.Int, args ...interface{}) (string, error) {
	if c.sender == nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteFailed, method, ErrNoSender)
	}

	data, err := encodeCall(method, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteFailed, method, err)
	}

	estimate, err := c.rpc.EstimateGas(ctx, c.from, contract, data, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: estimate gas: %w", ErrWriteFailed, method, err)
	}

	txHash, err := c.sender.SendTransaction(ctx, &TxRequest{
		To:       contract,
		Data:     data,
		Value:    value,
		GasLimit: BufferedGas(estimate),
	})
	if err != nil {
		if errors.Is(err, ErrUserRejected) {
			return "", fmt.Errorf("%w: %s: %w", ErrWriteFailed, method, err)
		}
		return "", fmt.Errorf("%w: %s: send: %w", ErrWriteFailed, method, err)
	}
	return txHash, nil
}

// BufferedGas applies the 20% safety buffer to a gas estimate.
func BufferedGas(estimate uint64) uint64 {
	return estimate * gasBufferNum / gasBufferDen
}
