package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrochain/evmrt"
)

func TestLoadBytes_OverlaysOnDefault(t *testing.T) {
	t.Parallel()
	doc := []byte(`
call_gas = 999
stack_limit = 2048
`)
	sched, err := LoadBytes(doc)
	require.NoError(t, err)
	require.EqualValues(t, 999, sched.CallGas)
	require.Equal(t, 2048, sched.StackLimit)

	def := evmrt.DefaultSchedule()
	require.Equal(t, def.CreateDataGas, sched.CreateDataGas)
	require.Equal(t, def.LogTopicGas, sched.LogTopicGas)
}

func TestLoadBytes_EmptyDocumentYieldsDefault(t *testing.T) {
	t.Parallel()
	sched, err := LoadBytes([]byte(``))
	require.NoError(t, err)
	require.Equal(t, evmrt.DefaultSchedule(), sched)
}

func TestLoadFile_MissingPathErrors(t *testing.T) {
	t.Parallel()
	_, err := LoadFile("/nonexistent/schedule.toml")
	require.Error(t, err)
}
