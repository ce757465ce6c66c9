package evmrt

// CallType distinguishes the calling convention of a frame, mirroring
// Parity's types::executed::CallType.
type CallType int

const (
	// CallNone is used for contract creation frames, which have no caller
	// semantics of their own.
	CallNone CallType = iota
	// CallCall is a normal message call: value moves, code runs against
	// address's own storage.
	CallCall
	// CallCallCode executes address's code against the caller's storage
	// and identity, but still allows value transfer.
	CallCallCode
	// CallDelegateCall is like CallCode but additionally inherits sender
	// and apparent value from the parent frame.
	CallDelegateCall
	// CallStaticCall forbids all state mutation in the callee and its
	// descendants.
	CallStaticCall
)

// ActionValueKind distinguishes whether a frame's value is actually
// transferred or only exposed to the guest.
type ActionValueKind int

const (
	// ValueTransfer moves funds from sender to address before execution.
	ValueTransfer ActionValueKind = iota
	// ValueApparent exposes a value to the guest without moving funds,
	// used for delegated and static calls.
	ValueApparent
)

// ActionValue is the tagged union described in spec.md §3: either a real
// balance transfer or a value merely visible to the guest.
type ActionValue struct {
	Kind ActionValueKind
	Val  Word
}

// Transfer builds an ActionValue that moves funds.
func Transfer(w Word) ActionValue {
	return ActionValue{Kind: ValueTransfer, Val: w}
}

// Apparent builds an ActionValue that is visible but not transferred.
func Apparent(w Word) ActionValue {
	return ActionValue{Kind: ValueApparent, Val: w}
}

// ActionParams is the per-call descriptor passed to a frame, grounded on
// Parity's action_params::ActionParams.
type ActionParams struct {
	// Address is the account whose storage and logs are affected.
	Address Address
	// Sender is the caller.
	Sender Address
	// CodeAddress is the account whose code is executed; differs from
	// Address under delegated call.
	CodeAddress Address
	// Origin is the externally-owned account that initiated the
	// transaction, constant across the whole call tree.
	Origin Address

	Gas      uint64
	GasPrice Word
	Value    ActionValue

	// Code is the shared, immutable byte sequence executed by this frame.
	Code []byte
	// CodeHash is the keccak of Code, if already known.
	CodeHash *Hash
	// Data is the optional input buffer passed to the guest.
	Data []byte

	CallType CallType
}
