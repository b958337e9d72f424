package registry

import "errors"

var (
	// ErrUnsupportedChain indicates the chain id is not a supported deployment.
	ErrUnsupportedChain = errors.New("registry: unsupported chain id (supported: 1, 100)")

	// ErrInvalidAddress indicates a malformed contract or account address.
	ErrInvalidAddress = errors.New("registry: invalid address")

	// ErrInvalidStatus indicates an unrecognized item status value.
	ErrInvalidStatus = errors.New("registry: invalid item status")
)
