package evmrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReturnData_SliceClampsShortReads(t *testing.T) {
	t.Parallel()
	rd := NewReturnData([]byte{1, 2, 3})
	require.Equal(t, []byte{2, 3, 0, 0}, rd.Slice(1, 4))
	require.Equal(t, []byte{0, 0}, rd.Slice(10, 2))
}

func TestFinalization_KnownAndNeedsReturn(t *testing.T) {
	t.Parallel()
	k := Known(500)
	require.Equal(t, FinalizationKnown, k.Kind)
	require.EqualValues(t, 500, k.GasLeft)

	rd := NewReturnData([]byte{9})
	n := NeedsReturn(10, rd, true)
	require.Equal(t, FinalizationNeedsReturn, n.Kind)
	require.True(t, n.ApplyState)
	require.Equal(t, rd, n.Data)
}

func TestNewReturnPolicy_BuildsFixedRef(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 4)
	var sink []byte
	policy := NewReturnPolicy(buf, &sink)
	require.Equal(t, OutputReturn, policy.Kind)
	require.Equal(t, BytesRefFixed, policy.Ref.Kind)
}

func TestNewFlexibleReturnPolicy_BuildsFlexRef(t *testing.T) {
	t.Parallel()
	var buf []byte
	policy := NewFlexibleReturnPolicy(&buf, nil)
	require.Equal(t, BytesRefFlexible, policy.Ref.Kind)
	require.Nil(t, policy.CopySink)
}

func TestNewInitContractPolicy_HasNoRef(t *testing.T) {
	t.Parallel()
	var sink []byte
	policy := NewInitContractPolicy(&sink)
	require.Equal(t, OutputInitContract, policy.Kind)
}
