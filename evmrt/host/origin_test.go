package host

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrochain/evmrt"
)

func TestOriginInfoFrom_CopiesActionParams(t *testing.T) {
	t.Parallel()
	params := evmrt.ActionParams{
		Address:  evmrt.Address{1},
		Origin:   evmrt.Address{2},
		GasPrice: evmrt.WordFromUint64(7),
		Value:    evmrt.Transfer(evmrt.WordFromUint64(42)),
	}

	info := OriginInfoFrom(params)
	require.Equal(t, params.Address, info.Address)
	require.Equal(t, params.Origin, info.Origin)
	require.Equal(t, uint64(7), info.GasPrice.Uint64())
	require.Equal(t, uint64(42), info.Value.Uint64())
}
