package host

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/internal/testutil"
	"github.com/ferrochain/evmrt/state"
)

type noopTracer struct {
	suicides []evmrt.Address
}

func (n *noopTracer) TraceSuicide(address evmrt.Address, balance evmrt.Word, refundAddress evmrt.Address) {
	n.suicides = append(n.suicides, address)
}

type noopVMTracer struct{}

func (noopVMTracer) TraceNextInstruction(pc uint64, op byte) bool           { return false }
func (noopVMTracer) TracePrepareExecute(pc uint64, op byte, gasCost uint64) {}
func (noopVMTracer) TraceExecuted(gasUsed uint64, stackPush []evmrt.Word, memDiff *evmrt.MemDiff, storeDiff *evmrt.StoreDiff) {
}

// stubExecutor lets externalities tests exercise Create/Call/BlockHash
// without a real interpreter: it returns a canned Finalization.
type stubExecutor struct {
	fin        evmrt.Finalization
	sub        *evmrt.Substate
	err        error
	lastReq    evmrt.ActionParams
	lastStatic bool
}

func (s *stubExecutor) ExecuteChild(parent evmrt.Ext, params evmrt.ActionParams, childStatic bool) (evmrt.Finalization, *evmrt.Substate, error) {
	s.lastReq = params
	s.lastStatic = childStatic
	if s.sub == nil {
		s.sub = evmrt.NewSubstate()
	}
	return s.fin, s.sub, s.err
}

func newTestExternalities(backend state.Backend, params evmrt.ActionParams, sub *evmrt.Substate, static bool, executor evmrt.NestedExecutor) evmrt.Ext {
	env := &evmrt.EnvInfo{Number: 1}
	sched := evmrt.DefaultSchedule()
	var copySink []byte
	output := evmrt.NewInitContractPolicy(&copySink)
	return NewExternalities(backend, env, Eip210Params{}, sched, 0, params, sub, output, &noopTracer{}, noopVMTracer{}, static, executor)
}

func TestExternalities_StorageRoundTrips(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{5}
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	key := evmrt.Hash{1}
	val := evmrt.Hash{2}
	require.NoError(t, ext.SetStorage(key, val))

	got, err := ext.StorageAt(key)
	require.NoError(t, err)
	require.Equal(t, val, got)
}

func TestExternalities_SetStorageRejectedInStaticContext(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: evmrt.Address{1}}, sub, true, &stubExecutor{})

	err := ext.SetStorage(evmrt.Hash{1}, evmrt.Hash{2})
	require.ErrorIs(t, err, evmrt.ErrMutableCallInStaticContext)
}

func TestExternalities_LogRejectedInStaticContext(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: evmrt.Address{1}}, sub, true, &stubExecutor{})

	require.ErrorIs(t, ext.Log(nil, []byte("x")), evmrt.ErrMutableCallInStaticContext)
}

func TestExternalities_LogAppendsToSubstate(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{3}
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	topics := []evmrt.Hash{{1}}
	require.NoError(t, ext.Log(topics, []byte("hello")))
	require.Len(t, sub.Logs, 1)
	require.Equal(t, addr, sub.Logs[0].Address)
	require.Equal(t, []byte("hello"), sub.Logs[0].Data)
}

func TestExternalities_SuicideRejectedInStaticContext(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: evmrt.Address{1}}, sub, true, &stubExecutor{})

	require.ErrorIs(t, ext.Suicide(evmrt.Address{2}), evmrt.ErrMutableCallInStaticContext)
}

func TestExternalities_SuicideToSelfZeroesBalanceWithoutTransfer(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{1}
	backend.Bal[addr] = evmrt.WordFromUint64(100)
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	require.NoError(t, ext.Suicide(addr))
	bal, err := backend.Balance(addr)
	require.NoError(t, err)
	require.True(t, bal.IsZero())
	_, suicided := sub.Suicides[addr]
	require.True(t, suicided)
}

func TestExternalities_SuicideTransfersToRefundAddress(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{1}
	refund := evmrt.Address{2}
	backend.Bal[addr] = evmrt.WordFromUint64(100)
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	require.NoError(t, ext.Suicide(refund))

	fromBal, _ := backend.Balance(addr)
	toBal, _ := backend.Balance(refund)
	require.True(t, fromBal.IsZero())
	require.EqualValues(t, 100, toBal.Uint64())
}

func TestExternalities_RetInitContractChargesDeploymentGas(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{1}
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	sched := evmrt.DefaultSchedule()
	data := make([]byte, 10)
	gasLeft, err := ext.Ret(uint64(10*sched.CreateDataGas)+50, evmrt.NewReturnData(data))
	require.NoError(t, err)
	require.EqualValues(t, 50, gasLeft)

	code, err := backend.Code(addr)
	require.NoError(t, err)
	require.Equal(t, data, code)
}

func TestExternalities_RetInitContractOutOfGasWhenExceptional(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{1}
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr}, sub, false, &stubExecutor{})

	data := make([]byte, 1000)
	_, err := ext.Ret(1, evmrt.NewReturnData(data))
	require.ErrorIs(t, err, evmrt.ErrOutOfGas)
}

func TestExternalities_CreateMergesSubstateOnSuccess(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sender := evmrt.Address{1}
	sub := evmrt.NewSubstate()
	childSub := evmrt.NewSubstate()
	childSub.Logs = append(childSub.Logs, evmrt.LogEntry{Address: sender})
	executor := &stubExecutor{fin: evmrt.Known(900), sub: childSub}
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: sender, Origin: sender}, sub, false, executor)

	result := ext.Create(1000, evmrt.WordFromUint64(0), []byte{1, 2, 3}, evmrt.FromSenderAndNonce, nil)
	require.Equal(t, evmrt.CreateResultCreated, result.Kind)
	require.Len(t, sub.Logs, 1, "successful child substate must merge")
	require.Contains(t, sub.ContractsCreated, result.Address)
	require.Equal(t, evmrt.CallNone, executor.lastReq.CallType)
}

func TestExternalities_CreateWithSaltUsesCreate2Scheme(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sender := evmrt.Address{1}
	executor := &stubExecutor{fin: evmrt.Known(900)}

	saltA := evmrt.Hash{0xaa}
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: sender, Origin: sender}, evmrt.NewSubstate(), false, executor)
	resultA := ext.Create(1000, evmrt.WordFromUint64(0), []byte{1, 2, 3}, evmrt.FromSenderSaltAndCodeHash, &saltA)
	require.Equal(t, evmrt.CreateResultCreated, resultA.Kind)

	saltB := evmrt.Hash{0xbb}
	ext2 := newTestExternalities(backend, evmrt.ActionParams{Address: sender, Origin: sender}, evmrt.NewSubstate(), false, executor)
	resultB := ext2.Create(1000, evmrt.WordFromUint64(0), []byte{1, 2, 3}, evmrt.FromSenderSaltAndCodeHash, &saltB)
	require.Equal(t, evmrt.CreateResultCreated, resultB.Kind)

	require.NotEqual(t, resultA.Address, resultB.Address, "CREATE2 addresses must vary with salt")
}

func TestExternalities_CreateSkipsNonceIncrementForUnsignedSender(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	executor := &stubExecutor{fin: evmrt.Known(900)}
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: unsignedSenderAddress, Origin: unsignedSenderAddress}, sub, false, executor)

	ext.Create(1000, evmrt.WordFromUint64(0), []byte{1}, evmrt.FromSenderAndNonce, nil)

	nonce, err := backend.Nonce(unsignedSenderAddress)
	require.NoError(t, err)
	require.True(t, nonce.IsZero())
}

func TestExternalities_CreateRevertedDiscardsSubstate(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	addr := evmrt.Address{1}
	sub := evmrt.NewSubstate()
	childSub := evmrt.NewSubstate()
	childSub.Logs = append(childSub.Logs, evmrt.LogEntry{Address: addr})
	executor := &stubExecutor{fin: evmrt.NeedsReturn(10, evmrt.ReturnData{}, false), sub: childSub}
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: addr, Origin: addr}, sub, false, executor)

	result := ext.Create(1000, evmrt.WordFromUint64(0), []byte{1}, evmrt.FromSenderAndNonce, nil)
	require.Equal(t, evmrt.CreateResultReverted, result.Kind)
	require.Empty(t, sub.Logs, "reverted child substate must not merge")
}

func TestExternalities_CallPropagatesStaticFromCallType(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	executor := &stubExecutor{fin: evmrt.Known(10)}
	ext := newTestExternalities(backend, evmrt.ActionParams{Address: evmrt.Address{1}}, sub, false, executor)

	ext.Call(500, evmrt.Address{1}, evmrt.Address{2}, nil, nil, evmrt.Address{2}, make([]byte, 4), evmrt.CallStaticCall)

	require.True(t, executor.lastStatic, "CallStaticCall must force the child frame static regardless of the parent")
}

func TestExternalities_ScheduleEnvDepthAccessors(t *testing.T) {
	t.Parallel()
	backend := testutil.NewMemState()
	sub := evmrt.NewSubstate()
	ext := newTestExternalities(backend, evmrt.ActionParams{}, sub, false, &stubExecutor{})

	require.NotNil(t, ext.Schedule())
	require.NotNil(t, ext.EnvInfo())
	require.Equal(t, 0, ext.Depth())

	ext.IncSstoreClears()
	require.EqualValues(t, 1, sub.SstoreClears)
}
