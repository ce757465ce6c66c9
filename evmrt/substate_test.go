package evmrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstate_MergeFromFoldsChild(t *testing.T) {
	t.Parallel()
	parent := NewSubstate()
	child := NewSubstate()

	addr := Address{1}
	child.Logs = append(child.Logs, LogEntry{Address: addr})
	child.ContractsCreated = append(child.ContractsCreated, addr)
	child.SstoreClears = 3
	child.Suicides[addr] = struct{}{}
	child.Touch(addr)

	parent.MergeFrom(child)

	require.Len(t, parent.Logs, 1)
	require.Equal(t, []Address{addr}, parent.ContractsCreated)
	require.EqualValues(t, 3, parent.SstoreClears)
	_, suicided := parent.Suicides[addr]
	require.True(t, suicided)
	_, touched := parent.TouchedAccounts[addr]
	require.True(t, touched)
}

func TestSubstate_ToCleanupMode(t *testing.T) {
	t.Parallel()
	sub := NewSubstate()

	off := sub.ToCleanupMode(CleanDustOff)
	require.Equal(t, CleanDustOff, off.Mode)
	require.Nil(t, off.TouchedSet)

	basic := sub.ToCleanupMode(CleanDustBasicOnly)
	require.Equal(t, CleanDustBasicOnly, basic.Mode)
	require.NotNil(t, basic.TouchedSet)
}
