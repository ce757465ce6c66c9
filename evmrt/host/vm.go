package host

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/state"
)

var log = logger.GetOrCreate("evmrt/host")

// VM is the top-level entry point a transaction executive calls into: it
// wires an interpreter (Evm), a state backend, a schedule, environment and
// tracers into an Executor and runs one outermost frame, enforcing a wall
// clock timeout the way the teacher's RunSmartContractCreate/Call do
// (arwen/host/arwen.go), since gas exhaustion alone cannot bound a guest
// stuck outside any metered host call (e.g. an infinite loop inside a
// single WASM instruction sequence the engine fails to preempt).
type VM struct {
	Interpreter evmrt.Evm
	State       state.Backend
	Eip210      Eip210Params
	MaxDepth    int
	Timeout     time.Duration
	Tracer      evmrt.Tracer
	VMTracer    evmrt.VMTracer

	// Schedule overrides the era selected by block number, for callers that
	// load a custom fee table (evmrt/schedule.LoadFile). Nil selects the
	// schedule for blockNumber as usual.
	Schedule *evmrt.Schedule
}

// RunCreate executes a contract-creation frame: params.CallType must be
// evmrt.CallNone and params.Code is the init code, whose RETURN output
// installs the deployed contract (spec.md §3's InitContract policy).
func (vm *VM) RunCreate(blockNumber uint64, env *evmrt.EnvInfo, params evmrt.ActionParams) (evmrt.Finalization, *evmrt.Substate, error) {
	log.Trace("RunCreate begin", "address", params.Address, "gas", params.Gas, "len(code)", len(params.Code))
	var copySink []byte
	fin, sub, err := vm.run(blockNumber, env, params, evmrt.NewInitContractPolicy(&copySink))
	log.Trace("RunCreate end", "gasLeft", fin.GasLeft, "err", err)
	return fin, sub, err
}

// RunCall executes a message-call frame against an existing account.
func (vm *VM) RunCall(blockNumber uint64, env *evmrt.EnvInfo, params evmrt.ActionParams, out []byte) (evmrt.Finalization, *evmrt.Substate, error) {
	log.Trace("RunCall begin", "address", params.Address, "gas", params.Gas, "len(data)", len(params.Data))
	var copySink []byte
	fin, sub, err := vm.run(blockNumber, env, params, evmrt.NewReturnPolicy(out, &copySink))
	log.Trace("RunCall end", "gasLeft", fin.GasLeft, "err", err)
	return fin, sub, err
}

func (vm *VM) run(blockNumber uint64, env *evmrt.EnvInfo, params evmrt.ActionParams, output evmrt.OutputPolicy) (evmrt.Finalization, *evmrt.Substate, error) {
	timeout := vm.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sched := vm.Schedule
	if sched == nil {
		sched = evmrt.SelectSchedule(blockNumber, vm.Eip210.Transition)
	}
	sub := evmrt.NewSubstate()

	executor := &Executor{
		VM:       vm.Interpreter,
		State:    vm.State,
		Sched:    sched,
		Eip210:   vm.Eip210,
		Tracer:   vm.Tracer,
		VMTracer: vm.VMTracer,
		MaxDepth: vm.MaxDepth,
	}

	ext := NewExternalities(vm.State, env, vm.Eip210, sched, 0, params, sub, output, vm.Tracer, vm.VMTracer, params.CallType == evmrt.CallStaticCall, executor)

	type result struct {
		fin evmrt.Finalization
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("execution panicked", "error", r, "stack", string(debug.Stack()))
				done <- result{err: fmt.Errorf("%w: %v", evmrt.ErrExecutionPanicked, r)}
			}
		}()
		fin, err := vm.Interpreter.Exec(params, ext)
		done <- result{fin: fin, err: err}
	}()

	select {
	case r := <-done:
		return r.fin, sub, r.err
	case <-ctx.Done():
		return evmrt.Finalization{}, sub, evmrt.ErrOutOfGas
	}
}
