package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

func TestEthCallerRead(t *testing.T) {
	ret, err := encodeArgs([]argType{typeUint256}, []interface{}{big.NewInt(42)})
	require.NoError(t, err)

	server := rpcServer(t, map[string]string{
		"eth_call": fmt.Sprintf(`"0x%s"`, hex.EncodeToString(ret)),
	})
	defer server.Close()

	caller := NewEthCaller(NewRPCClient(server.URL))
	out, err := caller.Read(context.Background(), testContract, "arbitrationCost", []byte{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(42), out[0].(*big.Int).Int64())
}

func TestEthCallerReadFailures(t *testing.T) {
	server := rpcServer(t, nil) // every method errors
	defer server.Close()

	caller := NewEthCaller(NewRPCClient(server.URL))

	_, err := caller.Read(context.Background(), testContract, "noSuchMethod")
	assert.ErrorIs(t, err, ErrReadFailed)
	assert.ErrorIs(t, err, ErrUnknownMethod)

	_, err = caller.Read(context.Background(), testContract, "arbitrationCost", []byte{})
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestEthCallerWrite(t *testing.T) {
	server := rpcServer(t, map[string]string{"eth_estimateGas": `"0x186a0"`})
	defer server.Close()

	var captured *TxRequest
	sender := &MockSender{
		SendTransactionFn: func(ctx context.Context, tx *TxRequest) (string, error) {
			captured = tx
			return "0xtxhash", nil
		},
	}

	caller := NewEthCaller(NewRPCClient(server.URL), WithSender(sender, testContract))
	value := big.NewInt(1000)
	hash, err := caller.Write(context.Background(), testContract, "addItem", value, "/ipfs/QmItem/item.json")
	require.NoError(t, err)
	assert.Equal(t, "0xtxhash", hash)

	require.NotNil(t, captured)
	assert.Equal(t, testContract, captured.To)
	assert.Equal(t, 0, value.Cmp(captured.Value))
	// Estimate of 100000 is buffered by 20%.
	assert.Equal(t, uint64(120000), captured.GasLimit)
	assert.Equal(t, Selector("addItem(string)"), captured.Data[:4])
}

func TestEthCallerWriteNoSender(t *testing.T) {
	caller := NewEthCaller(NewRPCClient("http://localhost:0"))
	_, err := caller.Write(context.Background(), testContract, "addItem", nil, "/ipfs/x")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, ErrNoSender)
}

func TestEthCallerWriteUserRejected(t *testing.T) {
	server := rpcServer(t, map[string]string{"eth_estimateGas": `"0x5208"`})
	defer server.Close()

	sender := &MockSender{
		SendTransactionFn: func(ctx context.Context, tx *TxRequest) (string, error) {
			return "", fmt.Errorf("%w: declined in wallet", ErrUserRejected)
		},
	}

	caller := NewEthCaller(NewRPCClient(server.URL), WithSender(sender, testContract))
	_, err := caller.Write(context.Background(), testContract, "addItem", nil, "/ipfs/x")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, ErrUserRejected)
}

func TestEthCallerWriteSendFailure(t *testing.T) {
	server := rpcServer(t, map[string]string{"eth_estimateGas": `"0x5208"`})
	defer server.Close()

	sender := &MockSender{
		SendTransactionFn: func(ctx context.Context, tx *TxRequest) (string, error) {
			return "", errors.New("nonce too low")
		},
	}

	caller := NewEthCaller(NewRPCClient(server.URL), WithSender(sender, testContract))
	_, err := caller.Write(context.Background(), testContract, "addItem", nil, "/ipfs/x")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.NotErrorIs(t, err, ErrUserRejected)
}

func TestBufferedGas(t *testing.T) {
	assert.Equal(t, uint64(120000), BufferedGas(100000))
	assert.Equal(t, uint64(120), BufferedGas(100))
	assert.Equal(t, uint64(0), BufferedGas(0))
}
