package ipfs

import "errors"

var (
	// ErrNotFound indicates no configured gateway could serve the content.
	ErrNotFound = errors.New("ipfs: content not found")

	// ErrUploadFailed indicates the API node rejected or dropped an upload.
	ErrUploadFailed = errors.New("ipfs: upload failed")

	// ErrNoGateways indicates the client was constructed without gateways.
	ErrNoGateways = errors.New("ipfs: no gateways configured")

	// ErrInvalidPath indicates a content path that is empty after
	// normalization.
	ErrInvalidPath = errors.New("ipfs: invalid content path")
)
