package host

import (
	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/state"
)

// Executor is the concrete evmrt.NestedExecutor: it turns an Ext.Call or
// Ext.Create request into a recursive invocation of the same Evm the
// calling frame is running under, constructing a fresh Externalities and
// Substate for the child and returning its Finalization without mutating
// the parent's Substate itself (the caller — Externalities.Call/Create —
// decides whether to merge on success). Adapted from the teacher's
// cross-shard async call dispatch (arwen/host/asyncCall.go) collapsed down
// to a single synchronous recursive call, since this runtime has no
// asynchronous call boundary.
type Executor struct {
	VM       evmrt.Evm
	State    state.Backend
	Sched    *evmrt.Schedule
	Eip210   Eip210Params
	Tracer   evmrt.Tracer
	VMTracer evmrt.VMTracer

	// MaxDepth bounds call-stack recursion (spec.md §5's only other
	// resource limit besides gas).
	MaxDepth int
}

// ErrStackDepthExceeded signals that a nested call or create would exceed
// MaxDepth.
var ErrStackDepthExceeded = &evmrt.ErrInternal{Detail: "call stack depth exceeded"}

func (x *Executor) ExecuteChild(parent evmrt.Ext, params evmrt.ActionParams, childStatic bool) (evmrt.Finalization, *evmrt.Substate, error) {
	depth := parent.Depth() + 1
	if x.MaxDepth > 0 && depth > x.MaxDepth {
		return evmrt.Finalization{}, nil, ErrStackDepthExceeded
	}

	childSub := evmrt.NewSubstate()

	var output evmrt.OutputPolicy
	var copySink []byte
	if params.CallType == evmrt.CallNone {
		output = evmrt.NewInitContractPolicy(&copySink)
	} else {
		buf := make([]byte, 0)
		output = evmrt.NewFlexibleReturnPolicy(&buf, &copySink)
	}

	childExt := NewExternalities(
		x.State,
		parent.EnvInfo(),
		x.Eip210,
		x.Sched,
		depth,
		params,
		childSub,
		output,
		x.Tracer,
		x.VMTracer,
		childStatic,
		x,
	)

	fin, err := x.VM.Exec(params, childExt)
	if err != nil {
		return evmrt.Finalization{}, nil, err
	}
	return fin, childSub, nil
}
