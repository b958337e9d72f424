package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsForChain(t *testing.T) {
	mainnet, err := ParamsForChain(1)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", mainnet.Name)
	assert.Equal(t, 18, mainnet.NativeDecimals)

	gnosis, err := ParamsForChain(100)
	require.NoError(t, err)
	assert.Equal(t, "gnosis", gnosis.Name)
	assert.Equal(t, "xDAI", gnosis.NativeSymbol)
}

func TestParamsForChainUnsupported(t *testing.T) {
	for _, id := range []uint64{0, 2, 5, 137, 42161} {
		_, err := ParamsForChain(id)
		assert.ErrorIs(t, err, ErrUnsupportedChain, "chain %d", id)
	}
}

func TestSupportedChainIDs(t *testing.T) {
	assert.Equal(t, []uint64{1, 100}, SupportedChainIDs())
}
