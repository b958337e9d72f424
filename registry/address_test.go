package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHexAddress(t *testing.T) {
	assert.True(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.True(t, IsHexAddress("0x0000000000000000000000000000000000000000"))

	assert.False(t, IsHexAddress(""))
	assert.False(t, IsHexAddress("0x"))
	assert.False(t, IsHexAddress("5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.False(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe"))    // too short
	assert.False(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedd")) // too long
	assert.False(t, IsHexAddress("0xzzAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
}

func TestNormalizeAddress(t *testing.T) {
	addr, err := NormalizeAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", addr)

	_, err = NormalizeAddress("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestChecksumAddress(t *testing.T) {
	// Reference vectors from the EIP-55 specification.
	vectors := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for _, want := range vectors {
		got, err := ChecksumAddress(strings.ToLower(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Checksumming is idempotent.
		again, err := ChecksumAddress(got)
		require.NoError(t, err)
		assert.Equal(t, want, again)
	}
}

func TestChecksumAddressInvalid(t *testing.T) {
	_, err := ChecksumAddress("0x123")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
