package fees

import "errors"

var (
	// ErrNotDisputed indicates the request has no active dispute, so no
	// appeal-related amounts exist for it.
	ErrNotDisputed = errors.New("fees: request is not disputed")

	// ErrInvalidArbitrator indicates the registry reported an empty or
	// malformed arbitrator address.
	ErrInvalidArbitrator = errors.New("fees: invalid arbitrator address")

	// ErrAlreadyFunded indicates the side's appeal fee is already fully
	// funded; no transaction was submitted.
	ErrAlreadyFunded = errors.New("fees: side already fully funded")

	// ErrInvalidSide indicates a side value outside requester/challenger.
	ErrInvalidSide = errors.New("fees: invalid side")
)
