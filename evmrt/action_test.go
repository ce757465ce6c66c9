package evmrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransfer_TagsValueTransferKind(t *testing.T) {
	t.Parallel()
	v := Transfer(WordFromUint64(5))
	require.Equal(t, ValueTransfer, v.Kind)
	require.EqualValues(t, 5, v.Val.Uint64())
}

func TestApparent_TagsValueApparentKind(t *testing.T) {
	t.Parallel()
	v := Apparent(WordFromUint64(7))
	require.Equal(t, ValueApparent, v.Kind)
	require.EqualValues(t, 7, v.Val.Uint64())
}
