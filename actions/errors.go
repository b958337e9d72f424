package actions

import "errors"

var (
	// ErrNotChallengeable indicates the item has no pending request to
	// challenge.
	ErrNotChallengeable = errors.New("actions: item has no challengeable request")

	// ErrNilEvidence indicates a required evidence document was not provided.
	ErrNilEvidence = errors.New("actions: evidence must not be nil")
)
