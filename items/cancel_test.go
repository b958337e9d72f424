package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	token := NewToken()
	assert.False(t, token.Cancelled())
	assert.NoError(t, token.Err())

	token.Cancel()
	assert.True(t, token.Cancelled())
	assert.ErrorIs(t, token.Err(), ErrAborted)

	// Cancelling twice is harmless.
	token.Cancel()
	assert.True(t, token.Cancelled())
}

func TestNilToken(t *testing.T) {
	var token *Token
	assert.False(t, token.Cancelled())
	assert.NoError(t, token.Err())
	token.Cancel() // must not panic
}
