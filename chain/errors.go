package chain

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the node.
	ErrConnectionFailed = errors.New("chain: connection failed")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("chain: invalid response")

	// ErrReadFailed indicates a contract state getter failed.
	ErrReadFailed = errors.New("chain: contract read failed")

	// ErrWriteFailed indicates a transaction submission failed.
	ErrWriteFailed = errors.New("chain: transaction submission failed")

	// ErrUserRejected indicates the signer explicitly declined the transaction.
	// It is always wrapped inside ErrWriteFailed so that callers can
	// distinguish an explicit rejection from every other submission failure.
	ErrUserRejected = errors.New("chain: transaction rejected by signer")

	// ErrNoSender indicates a write was attempted without a configured Sender.
	ErrNoSender = errors.New("chain: no transaction sender configured")

	// ErrUnknownMethod indicates a method name outside the fixed contract
	// capability set.
	ErrUnknownMethod = errors.New("chain: unknown contract method")

	// ErrEncoding indicates call data could not be encoded for a method.
	ErrEncoding = errors.New("chain: encode call data")

	// ErrDecoding indicates return data could not be decoded for a method.
	ErrDecoding = errors.New("chain: decode return data")
)
