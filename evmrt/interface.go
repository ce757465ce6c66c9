package evmrt

// CreateAddressScheme selects how a new contract's address is derived
// (spec.md §4.3).
type CreateAddressScheme int

const (
	// FromSenderAndNonce derives keccak(rlp(sender, nonce))[12:].
	FromSenderAndNonce CreateAddressScheme = iota
	// FromSenderSaltAndCodeHash derives keccak(0xff||sender||salt||codehash)[12:].
	FromSenderSaltAndCodeHash
	// FromSenderAndCodeHash derives keccak(sender||codehash)[12:].
	FromSenderAndCodeHash
)

// CreateResultKind tags a Create call's outcome.
type CreateResultKind int

const (
	CreateResultCreated CreateResultKind = iota
	CreateResultReverted
	CreateResultFailed
)

// CreateResult is the result of Ext.Create.
type CreateResult struct {
	Kind    CreateResultKind
	Address Address
	GasLeft uint64
	Data    ReturnData
}

// CallResultKind tags a Call's outcome.
type CallResultKind int

const (
	CallResultSuccess CallResultKind = iota
	CallResultReverted
	CallResultFailed
)

// CallResult is the result of Ext.Call.
type CallResult struct {
	Kind       CallResultKind
	GasLeft    uint64
	ReturnData ReturnData
}

// Tracer receives structural execution trace events (spec.md §4.2's
// tracing hooks, the non-vetoable half: suicide tracing happens
// unconditionally, the vetoable per-step hooks live on VMTracer).
type Tracer interface {
	TraceSuicide(address Address, balance Word, refundAddress Address)
}

// VMTracer implements the vetoable per-instruction tracing hooks described
// in spec.md §4.2 and §9 ("Tracing via vetoable hook"): TraceNextInstruction
// returns whether the fine-grained hooks should be invoked at all,
// permitting a zero-cost path when tracing is off.
type VMTracer interface {
	TraceNextInstruction(pc uint64, op byte) bool
	TracePrepareExecute(pc uint64, op byte, gasCost uint64)
	TraceExecuted(gasUsed uint64, stackPush []Word, memDiff *MemDiff, storeDiff *StoreDiff)
}

// MemDiff records a memory write observed by a tracer.
type MemDiff struct {
	Offset int
	Data   []byte
}

// StoreDiff records a storage write observed by a tracer.
type StoreDiff struct {
	Key   Word
	Value Word
}

// Ext is the host capability surface: the abstract contract every
// interpreter flavor consumes (spec.md §4.2). One Ext is constructed per
// frame and is never shared between frames.
type Ext interface {
	StorageAt(key Hash) (Hash, error)
	SetStorage(key, value Hash) error

	Exists(addr Address) (bool, error)
	ExistsAndNotNull(addr Address) (bool, error)

	Balance(addr Address) (Word, error)
	OriginBalance() (Word, error)

	BlockHash(number uint64) Hash

	// Create deploys code under the given address-derivation scheme. salt is
	// only consulted when scheme == FromSenderSaltAndCodeHash (CREATE2); it
	// is nil for the other two schemes.
	Create(gas uint64, value Word, code []byte, scheme CreateAddressScheme, salt *Hash) CreateResult
	Call(gas uint64, sender, receive Address, value *Word, data []byte, codeAddr Address, out []byte, callType CallType) CallResult

	ExtCode(addr Address) ([]byte, error)
	ExtCodeSize(addr Address) (int, error)

	// Ret dispatches return data onto this frame's output policy,
	// returning the gas remaining after any deployment charge, or
	// ErrOutOfGas.
	Ret(gas uint64, data ReturnData) (uint64, error)

	Log(topics []Hash, data []byte) error
	Suicide(refundAddr Address) error

	Schedule() *Schedule
	EnvInfo() *EnvInfo
	Depth() int

	IncSstoreClears()

	TraceNextInstruction(pc uint64, op byte) bool
	TracePrepareExecute(pc uint64, op byte, gasCost uint64)
	TraceExecuted(gasUsed uint64, stackPush []Word, memDiff *MemDiff, storeDiff *StoreDiff)
}

// Evm is the contract an interpreter flavor exposes to the executor
// (spec.md §6): execute one frame of guest code against a host.
type Evm interface {
	Exec(params ActionParams, host Ext) (Finalization, error)
}

// VMType tags which interpreter flavor the factory should instantiate
// (spec.md §4.9/§6).
type VMType byte

const (
	// VMTypeInterpreter is the stack-machine bytecode interpreter. Its
	// internals are out of scope (spec.md §1); only this tag exists so the
	// factory can refuse to serve it without a registered implementation.
	VMTypeInterpreter VMType = iota
	// VMTypeWASM is the WASM guest flavor implemented by evmrt/wasmvm.
	VMTypeWASM
)

// NestedExecutor constructs and runs a child execution from a parent host
// plus new action parameters (spec.md §2 item 10). evmrt/host implements
// this by recursing into the same Evm the parent frame is running under.
type NestedExecutor interface {
	// ExecuteChild runs params as a child frame of parent, returning its
	// Finalization. The child's Substate is the caller's responsibility to
	// merge on success; ExecuteChild itself never mutates the parent's
	// Substate.
	ExecuteChild(parent Ext, params ActionParams, childStatic bool) (Finalization, *Substate, error)
}
