// Package chain provides access to the registry and arbitrator contracts
// through an opaque read/write capability. The capability is implemented
// over Ethereum JSON-RPC, but the rest of the SDK only sees the Caller
// interface, so tests and alternative transports can substitute their own.
package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// RPCClient is a JSON-RPC 2.0 client for communicating with an Ethereum
// node. It handles request serialization and response parsing; contract
// call semantics are built on top of it by EthCaller.
type RPCClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

// rpcRequest represents a JSON-RPC 2.0 request payload.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcResponse represents a JSON-RPC 2.0 response payload.
type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcError represents an error returned by the JSON-RPC server.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCClient creates a new JSON-RPC client for the given node URL.
func NewRPCClient(url string) *RPCClient {
	return &RPCClient{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// Call invokes a JSON-RPC method on the node. If result is non-nil the
// response result is unmarshaled into it.
//
// Call returns ErrConnectionFailed if the HTTP request fails and
// ErrInvalidResponse if the response cannot be decoded. RPC-level errors
// (e.g. reverts surfaced by eth_call) are returned as plain errors with
// the server's message.
func (c *RPCClient) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("chain: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("chain: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrConnectionFailed, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}

	if rpcResp.ID != reqBody.ID {
		return fmt.Errorf("%w: response ID mismatch: expected %d, got %d",
			ErrInvalidResponse, reqBody.ID, rpcResp.ID)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("chain: rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %w", ErrInvalidResponse, err)
		}
	}

	return nil
}

// callMsg is the parameter object for eth_call and eth_estimateGas.
type callMsg struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value,omitempty"`
}

// CallContract executes a read-only contract call at the latest block and
// returns the raw return data.
func (c *RPCClient) CallContract(ctx context.Context, to string, data []byte) ([]byte, error) {
	msg := callMsg{To: to, Data: "0x" + hex.EncodeToString(data)}
	var out string
	if err := c.Call(ctx, "eth_call", []interface{}{msg, "latest"}, &out); err != nil {
		return nil, err
	}
	return decodeHexData(out)
}

// EstimateGas asks the node for a gas estimate for the given call.
func (c *RPCClient) EstimateGas(ctx context.Context, from, to string, data []byte, value *big.Int) (uint64, error) {
	msg := callMsg{From: from, To: to, Data: "0x" + hex.EncodeToString(data)}
	if value != nil && value.Sign() > 0 {
		msg.Value = "0x" + value.Text(16)
	}
	var out string
	if err := c.Call(ctx, "eth_estimateGas", []interface{}{msg}, &out); err != nil {
		return 0, err
	}
	gas, ok := new(big.Int).SetString(strings.TrimPrefix(out, "0x"), 16)
	if !ok || !gas.IsUint64() {
		return 0, fmt.Errorf("%w: gas estimate %q", ErrInvalidResponse, out)
	}
	return gas.Uint64(), nil
}

// logFilter is the parameter object for eth_getLogs.
type logFilter struct {
	Address   string   `json:"address"`
	Topics    []string `json:"topics"`
	FromBlock string   `json:"fromBlock"`
	ToBlock   string   `json:"toBlock"`
}

// logEntry is one entry returned by eth_getLogs.
type logEntry struct {
	Data   string   `json:"data"`
	Topics []string `json:"topics"`
}

// Logs returns the data payloads of all log entries emitted by address
// with the given topic0, from genesis to the latest block, in emission
// order.
func (c *RPCClient) Logs(ctx context.Context, address, topic0 string) ([][]byte, error) {
	filter := logFilter{
		Address:   address,
		Topics:    []string{topic0},
		FromBlock: "0x0",
		ToBlock:   "latest",
	}
	var entries []logEntry
	if err := c.Call(ctx, "eth_getLogs", []interface{}{filter}, &entries); err != nil {
		return nil, err
	}
	payloads := make([][]byte, 0, len(entries))
	for _, e := range entries {
		data, err := decodeHexData(e.Data)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, data)
	}
	return payloads, nil
}

// decodeHexData decodes a 0x-prefixed hex string into bytes.
func decodeHexData(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: hex data %q: %w", ErrInvalidResponse, s, err)
	}
	return data, nil
}
