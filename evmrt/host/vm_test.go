package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/internal/testutil"
)

type scriptedEvm struct {
	fin   evmrt.Finalization
	err   error
	sleep time.Duration
	host  evmrt.Ext
}

func (s *scriptedEvm) Exec(params evmrt.ActionParams, host evmrt.Ext) (evmrt.Finalization, error) {
	s.host = host
	if s.sleep > 0 {
		time.Sleep(s.sleep)
	}
	return s.fin, s.err
}

func TestVM_RunCallReturnsFinalization(t *testing.T) {
	t.Parallel()
	vm := &VM{
		Interpreter: &scriptedEvm{fin: evmrt.NeedsReturn(50, evmrt.NewReturnData([]byte{1, 2}), true)},
		State:       testutil.NewMemState(),
		MaxDepth:    1024,
		Tracer:      &noopTracer{},
		VMTracer:    noopVMTracer{},
	}

	env := &evmrt.EnvInfo{Number: 1}
	fin, sub, err := vm.RunCall(1, env, evmrt.ActionParams{CallType: evmrt.CallCall, Gas: 1000}, make([]byte, 16))
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.EqualValues(t, 50, fin.GasLeft)
}

func TestVM_RunCreateUsesInitContractPolicy(t *testing.T) {
	t.Parallel()
	interp := &scriptedEvm{fin: evmrt.Known(10)}
	backend := testutil.NewMemState()
	vm := &VM{
		Interpreter: interp,
		State:       backend,
		MaxDepth:    1024,
		Tracer:      &noopTracer{},
		VMTracer:    noopVMTracer{},
	}

	env := &evmrt.EnvInfo{Number: 1}
	addr := evmrt.Address{7}
	fin, _, err := vm.RunCreate(1, env, evmrt.ActionParams{Address: addr, CallType: evmrt.CallNone, Gas: 1000})
	require.NoError(t, err)
	require.EqualValues(t, 10, fin.GasLeft)

	// Under InitContract, Ret installs the returned bytes as code and
	// charges CreateDataGas per byte (2 * 200 out of 500).
	gasLeft, err := interp.host.Ret(500, evmrt.NewReturnData([]byte{1, 2}))
	require.NoError(t, err)
	require.EqualValues(t, 100, gasLeft)
	code, err := backend.Code(addr)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, code)
}

func TestVM_RunHonorsScheduleOverride(t *testing.T) {
	t.Parallel()
	custom := evmrt.DefaultSchedule()
	custom.CallGas = 4242
	var observed *evmrt.Schedule
	vm := &VM{
		Interpreter: scheduleCapturingEvm{observed: &observed},
		State:       testutil.NewMemState(),
		MaxDepth:    1024,
		Tracer:      &noopTracer{},
		VMTracer:    noopVMTracer{},
		Schedule:    custom,
	}

	env := &evmrt.EnvInfo{Number: 1}
	_, _, err := vm.RunCall(1, env, evmrt.ActionParams{CallType: evmrt.CallCall}, nil)
	require.NoError(t, err)
	require.NotNil(t, observed)
	require.EqualValues(t, 4242, observed.CallGas)
}

type scheduleCapturingEvm struct {
	observed **evmrt.Schedule
}

func (s scheduleCapturingEvm) Exec(params evmrt.ActionParams, host evmrt.Ext) (evmrt.Finalization, error) {
	sched := host.Schedule()
	*s.observed = sched
	return evmrt.Known(0), nil
}

func TestVM_RunTimesOutOnHungInterpreter(t *testing.T) {
	t.Parallel()
	vm := &VM{
		Interpreter: &scriptedEvm{fin: evmrt.Known(0), sleep: 100 * time.Millisecond},
		State:       testutil.NewMemState(),
		MaxDepth:    1024,
		Tracer:      &noopTracer{},
		VMTracer:    noopVMTracer{},
		Timeout:     10 * time.Millisecond,
	}

	env := &evmrt.EnvInfo{Number: 1}
	_, _, err := vm.RunCall(1, env, evmrt.ActionParams{CallType: evmrt.CallCall}, nil)
	require.ErrorIs(t, err, evmrt.ErrOutOfGas)
}
