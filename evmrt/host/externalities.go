package host

import (
	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/state"
)

// externalities is the concrete Ext implementation: the single most
// consulted component, borrowing state, substate, environment and schedule
// for the lifetime of exactly one frame. Grounded directly on Parity's
// externalities::Externalities.
type externalities struct {
	state    state.Backend
	env      *evmrt.EnvInfo
	eip210   Eip210Params
	depth    int
	origin   OriginInfo
	sub      *evmrt.Substate
	schedule *evmrt.Schedule
	output   evmrt.OutputPolicy
	tracer   evmrt.Tracer
	vmTracer evmrt.VMTracer
	static   bool

	// executor dispatches Call/Create into a recursive child frame; nil
	// only in tests that exercise Ext methods not touching it.
	executor evmrt.NestedExecutor
}

// NewExternalities builds a frame-scoped Ext, deriving OriginInfo from
// params and taking ownership of sub for the lifetime of the frame.
func NewExternalities(
	backend state.Backend,
	env *evmrt.EnvInfo,
	eip210 Eip210Params,
	sched *evmrt.Schedule,
	depth int,
	params evmrt.ActionParams,
	sub *evmrt.Substate,
	output evmrt.OutputPolicy,
	tracer evmrt.Tracer,
	vmTracer evmrt.VMTracer,
	static bool,
	executor evmrt.NestedExecutor,
) evmrt.Ext {
	return &externalities{
		state:    backend,
		env:      env,
		eip210:   eip210,
		depth:    depth,
		origin:   OriginInfoFrom(params),
		sub:      sub,
		schedule: sched,
		output:   output,
		tracer:   tracer,
		vmTracer: vmTracer,
		static:   static,
		executor: executor,
	}
}

func (e *externalities) StorageAt(key evmrt.Hash) (evmrt.Hash, error) {
	return e.state.StorageAt(e.origin.Address, key)
}

func (e *externalities) SetStorage(key, value evmrt.Hash) error {
	if e.static {
		return evmrt.ErrMutableCallInStaticContext
	}
	return e.state.SetStorage(e.origin.Address, key, value)
}

func (e *externalities) Exists(addr evmrt.Address) (bool, error) {
	return e.state.Exists(addr)
}

func (e *externalities) ExistsAndNotNull(addr evmrt.Address) (bool, error) {
	return e.state.ExistsAndNotNull(addr)
}

func (e *externalities) Balance(addr evmrt.Address) (evmrt.Word, error) {
	return e.state.Balance(addr)
}

func (e *externalities) OriginBalance() (evmrt.Word, error) {
	return e.Balance(e.origin.Address)
}

func (e *externalities) BlockHash(number uint64) evmrt.Hash {
	code, codeHash, err := e.codeAndHash(e.eip210.ContractAddress)
	if err != nil {
		code, codeHash = nil, evmrt.ZeroHash
	}
	return BlockHash(e.env, e.origin, e.eip210, number, code, codeHash, func(params evmrt.ActionParams) (evmrt.ReturnData, bool) {
		fin, _, err := e.executor.ExecuteChild(e, params, e.static)
		if err != nil {
			return evmrt.ReturnData{}, false
		}
		return fin.Data, true
	})
}

func (e *externalities) codeAndHash(addr evmrt.Address) ([]byte, evmrt.Hash, error) {
	code, err := e.state.Code(addr)
	if err != nil {
		return nil, evmrt.ZeroHash, err
	}
	hash, err := e.state.CodeHash(addr)
	if err != nil {
		return nil, evmrt.ZeroHash, err
	}
	return code, hash, nil
}

func (e *externalities) Create(gas uint64, value evmrt.Word, code []byte, scheme evmrt.CreateAddressScheme, salt *evmrt.Hash) evmrt.CreateResult {
	nonce, err := e.state.Nonce(e.origin.Address)
	if err != nil {
		return evmrt.CreateResult{Kind: evmrt.CreateResultFailed}
	}

	var saltVal evmrt.Hash
	if salt != nil {
		saltVal = *salt
	}
	address, codeHash := ContractAddress(scheme, e.origin.Address, nonce, code, saltVal)

	params := evmrt.ActionParams{
		CodeAddress: address,
		Address:     address,
		Sender:      e.origin.Address,
		Origin:      e.origin.Origin,
		Gas:         gas,
		GasPrice:    e.origin.GasPrice,
		Value:       evmrt.Transfer(value),
		Code:        code,
		CodeHash:    &codeHash,
		CallType:    evmrt.CallNone,
	}

	if !isUnsignedSender(e.origin.Address) {
		if err := e.state.IncNonce(e.origin.Address); err != nil {
			return evmrt.CreateResult{Kind: evmrt.CreateResultFailed}
		}
	}

	cleanup := e.sub.ToCleanupMode(e.schedule.CleanDust)
	if err := e.state.TransferBalance(e.origin.Address, address, value, cleanup); err != nil {
		return evmrt.CreateResult{Kind: evmrt.CreateResultFailed}
	}

	fin, childSub, err := e.executor.ExecuteChild(e, params, e.static)
	if err != nil {
		return evmrt.CreateResult{Kind: evmrt.CreateResultFailed}
	}
	if fin.Kind == evmrt.FinalizationNeedsReturn && !fin.ApplyState {
		return evmrt.CreateResult{Kind: evmrt.CreateResultReverted, GasLeft: fin.GasLeft, Address: address, Data: fin.Data}
	}

	e.sub.MergeFrom(childSub)
	e.sub.ContractsCreated = append(e.sub.ContractsCreated, address)
	return evmrt.CreateResult{Kind: evmrt.CreateResultCreated, Address: address, GasLeft: fin.GasLeft}
}

func (e *externalities) Call(gas uint64, sender, receive evmrt.Address, value *evmrt.Word, data []byte, codeAddr evmrt.Address, out []byte, callType evmrt.CallType) evmrt.CallResult {
	code, codeHash, err := e.codeAndHash(codeAddr)
	if err != nil {
		return evmrt.CallResult{Kind: evmrt.CallResultFailed}
	}

	params := evmrt.ActionParams{
		Sender:      sender,
		Address:     receive,
		Value:       evmrt.Apparent(e.origin.Value),
		CodeAddress: codeAddr,
		Origin:      e.origin.Origin,
		Gas:         gas,
		GasPrice:    e.origin.GasPrice,
		Code:        code,
		CodeHash:    &codeHash,
		Data:        data,
		CallType:    callType,
	}
	if value != nil {
		params.Value = evmrt.Transfer(*value)
		cleanup := e.sub.ToCleanupMode(e.schedule.CleanDust)
		if err := e.state.TransferBalance(sender, receive, *value, cleanup); err != nil {
			return evmrt.CallResult{Kind: evmrt.CallResultFailed}
		}
	}

	fin, childSub, err := e.executor.ExecuteChild(e, params, e.static || callType == evmrt.CallStaticCall)
	if err != nil {
		return evmrt.CallResult{Kind: evmrt.CallResultFailed}
	}
	copy(out, fin.Data.Bytes())

	if fin.Kind == evmrt.FinalizationNeedsReturn && !fin.ApplyState {
		return evmrt.CallResult{Kind: evmrt.CallResultReverted, GasLeft: fin.GasLeft, ReturnData: fin.Data}
	}

	e.sub.MergeFrom(childSub)
	return evmrt.CallResult{Kind: evmrt.CallResultSuccess, GasLeft: fin.GasLeft, ReturnData: fin.Data}
}

func (e *externalities) ExtCode(addr evmrt.Address) ([]byte, error) {
	code, err := e.state.Code(addr)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return []byte{}, nil
	}
	return code, nil
}

func (e *externalities) ExtCodeSize(addr evmrt.Address) (int, error) {
	return e.state.CodeSize(addr)
}

// Ret dispatches return data onto the frame's output policy, mirroring
// Parity's consuming `ret(self, ...)`: it is only ever called once, at
// frame completion.
func (e *externalities) Ret(gas uint64, data evmrt.ReturnData) (uint64, error) {
	policy := &e.output
	if policy.CopySink != nil {
		*policy.CopySink = append([]byte(nil), data.Bytes()...)
	}

	switch policy.Kind {
	case evmrt.OutputReturn:
		switch policy.Ref.Kind {
		case evmrt.BytesRefFixed:
			n := len(policy.Ref.Fixed)
			if data.Len() < n {
				n = data.Len()
			}
			copy(policy.Ref.Fixed[:n], data.Bytes()[:n])
		case evmrt.BytesRefFlexible:
			*policy.Ref.Flex = append([]byte(nil), data.Bytes()...)
		}
		return gas, nil

	case evmrt.OutputInitContract:
		cost := uint64(data.Len()) * e.schedule.CreateDataGas
		if cost > gas || data.Len() > e.schedule.CreateDataLimit {
			if e.schedule.ExceptionalFailedCodeDeposit {
				return 0, evmrt.ErrOutOfGas
			}
			return gas, nil
		}
		if err := e.state.InitCode(e.origin.Address, data.Bytes()); err != nil {
			return 0, err
		}
		return gas - cost, nil

	default:
		return gas, nil
	}
}

func (e *externalities) Log(topics []evmrt.Hash, data []byte) error {
	if e.static {
		return evmrt.ErrMutableCallInStaticContext
	}
	e.sub.Logs = append(e.sub.Logs, evmrt.LogEntry{
		Address: e.origin.Address,
		Topics:  append([]evmrt.Hash(nil), topics...),
		Data:    append([]byte(nil), data...),
	})
	return nil
}

// Suicide implements self-destruct, including the legacy client quirk
// (refundAddr == address zeroes the balance instead of transferring to
// self) documented in spec.md §4.2.
func (e *externalities) Suicide(refundAddr evmrt.Address) error {
	if e.static {
		return evmrt.ErrMutableCallInStaticContext
	}
	addr := e.origin.Address
	balance, err := e.Balance(addr)
	if err != nil {
		return err
	}

	if refundAddr == addr {
		if err := e.state.SubBalance(addr, balance, evmrt.NoEmpty()); err != nil {
			return err
		}
	} else {
		cleanup := e.sub.ToCleanupMode(e.schedule.CleanDust)
		if err := e.state.TransferBalance(addr, refundAddr, balance, cleanup); err != nil {
			return err
		}
	}

	e.tracer.TraceSuicide(addr, balance, refundAddr)
	e.sub.Suicides[addr] = struct{}{}
	return nil
}

func (e *externalities) Schedule() *evmrt.Schedule { return e.schedule }
func (e *externalities) EnvInfo() *evmrt.EnvInfo   { return e.env }
func (e *externalities) Depth() int                { return e.depth }

func (e *externalities) IncSstoreClears() {
	e.sub.SstoreClears++
}

func (e *externalities) TraceNextInstruction(pc uint64, op byte) bool {
	return e.vmTracer.TraceNextInstruction(pc, op)
}

func (e *externalities) TracePrepareExecute(pc uint64, op byte, gasCost uint64) {
	e.vmTracer.TracePrepareExecute(pc, op, gasCost)
}

func (e *externalities) TraceExecuted(gasUsed uint64, stackPush []evmrt.Word, memDiff *evmrt.MemDiff, storeDiff *evmrt.StoreDiff) {
	e.vmTracer.TraceExecuted(gasUsed, stackPush, memDiff, storeDiff)
}

// isUnsignedSender reports whether addr is the reserved sender used by
// synthetic/system transactions, which never increments a nonce (spec.md
// §4.3's "nonce-increment-skip" edge case).
func isUnsignedSender(addr evmrt.Address) bool {
	return addr == unsignedSenderAddress
}

var unsignedSenderAddress = evmrt.Address{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
}
