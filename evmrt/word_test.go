package evmrt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestWord_SubToZero(t *testing.T) {
	t.Parallel()
	a := WordFromUint64(1)
	zero := WordFromUint64(0)
	require.True(t, a.Sub(a).IsZero())
	require.Equal(t, -1, zero.Cmp(a))
}

func TestWord_Bytes32RoundTrip(t *testing.T) {
	t.Parallel()
	w := WordFromUint64(0x0102030405)
	h := w.Hash()
	got := WordFromHash(h)
	require.Equal(t, 0, w.Cmp(got))
}

func TestWord_AddSubMul(t *testing.T) {
	t.Parallel()
	a := WordFromUint64(7)
	b := WordFromUint64(5)
	require.Equal(t, uint64(12), a.Add(b).Uint64())
	require.Equal(t, uint64(2), a.Sub(b).Uint64())
	require.Equal(t, uint64(35), a.Mul(b).Uint64())
}

func TestHash_ToAddressRoundTrip(t *testing.T) {
	t.Parallel()
	addr := Address{1, 2, 3, 4, 5}
	h := addr.ToHash()
	got := h.ToAddress()
	require.Equal(t, addr, got)
}

func TestAddress_AsCommonAddressByteLayoutParity(t *testing.T) {
	t.Parallel()
	addr := Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	got := addr.asCommonAddress()
	require.Equal(t, common.Address(addr), got, "Address and common.Address must share byte layout")
	require.Equal(t, addr.Bytes(), got.Bytes())
}

func TestHash_FromCommonByteLayoutParity(t *testing.T) {
	t.Parallel()
	var ch common.Hash
	for i := range ch {
		ch[i] = byte(i)
	}
	got := hashFromCommon(ch)
	require.Equal(t, Hash(ch), got, "Hash and common.Hash must share byte layout")
	require.Equal(t, ch.Bytes(), got[:])
}

func TestAddressFromBytes_PadsAndTruncates(t *testing.T) {
	t.Parallel()
	short := AddressFromBytes([]byte{1, 2, 3})
	require.Equal(t, Address{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}, short)

	long := make([]byte, 25)
	long[24] = 0xff
	got := AddressFromBytes(long)
	require.Equal(t, byte(0xff), got[19])
}
