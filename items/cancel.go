package items

import "sync/atomic"

// Token is an explicit cooperative cancellation signal. The pipeline
// checks it at the top of each batch iteration; an in-flight request is
// never aborted mid-request, only the decision to start the next one.
//
// A nil *Token is valid and never cancelled.
type Token struct {
	cancelled atomic.Bool
}

// NewToken creates an uncancelled token.
func NewToken() *Token {
	return &Token{}
}

// Cancel sets the token. Safe to call from any goroutine, repeatedly.
func (t *Token) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether the token has been set.
func (t *Token) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Err returns ErrAborted if the token has been set, nil otherwise.
func (t *Token) Err() error {
	if t.Cancelled() {
		return ErrAborted
	}
	return nil
}
