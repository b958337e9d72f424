package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{
		StatusAbsent, StatusRegistered, StatusRegistrationRequested, StatusClearingRequested,
	} {
		parsed, err := ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := ParseStatus("Pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestItemLatestRequest(t *testing.T) {
	item := &Item{}
	assert.Nil(t, item.LatestRequest())

	item.Requests = []Request{
		{SubmissionTime: 1000},
		{SubmissionTime: 2000},
	}
	latest := item.LatestRequest()
	require.NotNil(t, latest)
	assert.Equal(t, int64(2000), latest.SubmissionTime)
}
