// Package testutil provides an in-memory evmrt.Ext test double, grounded
// verbatim on original_source/ethcore/src/evm/wasm/tests.rs's FakeExt,
// FakeCall and FakeCallType (themselves imported there from
// super::super::tests, the stack interpreter's own test harness). It lets
// host-level behavior (storage, suicide bookkeeping, nested dispatch
// recording) be exercised as plain Go table tests without a compiled WASM
// fixture.
package testutil

import "github.com/ferrochain/evmrt"

// FakeCallType tags the kind of nested dispatch FakeExt recorded.
type FakeCallType int

const (
	FakeCallCall FakeCallType = iota
	FakeCallCreate
)

// FakeCall is one recorded nested dispatch: a Call or Create that reached
// the fake host, together with the arguments it was invoked with.
type FakeCall struct {
	CallType       FakeCallType
	Gas            uint64
	SenderAddress  *evmrt.Address
	ReceiveAddress *evmrt.Address
	Value          *evmrt.Word
	Data           []byte
	CodeAddress    *evmrt.Address
	Salt           *evmrt.Hash
}

// FakeExt is a minimal evmrt.Ext: storage is a plain map, every nested
// Call/Create is recorded rather than actually dispatched and always
// reports failure, balances are all zero unless seeded, and Ret copies its
// payload into the last return data field instead of applying an output
// policy. It mirrors the Rust FakeExt's behavior of never really executing
// a callee, only observing what the guest asked for.
type FakeExt struct {
	Store    map[evmrt.Hash]evmrt.Hash
	Balances map[evmrt.Address]evmrt.Word
	Codes    map[evmrt.Address][]byte
	Suicides map[evmrt.Address]struct{}
	Calls    []FakeCall
	Logs     []evmrt.LogEntry

	SchedV   *evmrt.Schedule
	EnvV     *evmrt.EnvInfo
	DepthV   int
	IsStatic bool

	SstoreClearsCount uint64

	LastReturn evmrt.ReturnData
}

// NewFakeExt returns a FakeExt with the default schedule and an empty
// environment, matching the Rust FakeExt::new() used by every scenario in
// tests.rs.
func NewFakeExt() *FakeExt {
	sched := evmrt.DefaultSchedule()
	return &FakeExt{
		Store:    make(map[evmrt.Hash]evmrt.Hash),
		Balances: make(map[evmrt.Address]evmrt.Word),
		Codes:    make(map[evmrt.Address][]byte),
		Suicides: make(map[evmrt.Address]struct{}),
		SchedV:   sched,
		EnvV:     &evmrt.EnvInfo{},
	}
}

func (f *FakeExt) StorageAt(key evmrt.Hash) (evmrt.Hash, error) {
	return f.Store[key], nil
}

func (f *FakeExt) SetStorage(key, value evmrt.Hash) error {
	f.Store[key] = value
	return nil
}

func (f *FakeExt) Exists(addr evmrt.Address) (bool, error) {
	_, ok := f.Balances[addr]
	return ok, nil
}

func (f *FakeExt) ExistsAndNotNull(addr evmrt.Address) (bool, error) {
	bal, ok := f.Balances[addr]
	return ok && !bal.IsZero(), nil
}

func (f *FakeExt) Balance(addr evmrt.Address) (evmrt.Word, error) {
	return f.Balances[addr], nil
}

func (f *FakeExt) OriginBalance() (evmrt.Word, error) {
	return evmrt.Word{}, nil
}

// BlockHash always reports the zero hash, matching the Rust FakeExt's
// unconditional H256::zero() block_hash implementation.
func (f *FakeExt) BlockHash(number uint64) evmrt.Hash {
	return evmrt.ZeroHash
}

// Create records the attempt and always reports failure: the Rust
// FakeExt's create() never actually dispatches, just pushes a FakeCall and
// returns ContractCreateResult::Failed.
func (f *FakeExt) Create(gas uint64, value evmrt.Word, code []byte, scheme evmrt.CreateAddressScheme, salt *evmrt.Hash) evmrt.CreateResult {
	v := value
	f.Calls = append(f.Calls, FakeCall{
		CallType: FakeCallCreate,
		Gas:      gas,
		Value:    &v,
		Data:     code,
		Salt:     salt,
	})
	return evmrt.CreateResult{Kind: evmrt.CreateResultFailed}
}

// Call records the attempt and always reports failure, mirroring the Rust
// FakeExt's call() returning MessageCallResult::Failed unconditionally.
func (f *FakeExt) Call(gas uint64, sender, receive evmrt.Address, value *evmrt.Word, data []byte, codeAddr evmrt.Address, out []byte, callType evmrt.CallType) evmrt.CallResult {
	f.Calls = append(f.Calls, FakeCall{
		CallType:       FakeCallCall,
		Gas:            gas,
		SenderAddress:  &sender,
		ReceiveAddress: &receive,
		Value:          value,
		Data:           data,
		CodeAddress:    &codeAddr,
	})
	return evmrt.CallResult{Kind: evmrt.CallResultFailed}
}

func (f *FakeExt) ExtCode(addr evmrt.Address) ([]byte, error) {
	return f.Codes[addr], nil
}

func (f *FakeExt) ExtCodeSize(addr evmrt.Address) (int, error) {
	return len(f.Codes[addr]), nil
}

// Ret just records the payload; FakeExt has no output policy of its own,
// matching the Rust FakeExt's ret() being an unimplemented!() stub that
// tests.rs never reaches (every scenario resolves via GasLeft::Known or
// GasLeft::NeedsReturn before an explicit Ret host call would fire).
func (f *FakeExt) Ret(gas uint64, data evmrt.ReturnData) (uint64, error) {
	f.LastReturn = data
	return gas, nil
}

func (f *FakeExt) Log(topics []evmrt.Hash, data []byte) error {
	f.Logs = append(f.Logs, evmrt.LogEntry{Topics: topics, Data: data})
	return nil
}

// Suicide records refundAddr, matching the Rust FakeExt's suicides: HashSet<Address>.
func (f *FakeExt) Suicide(refundAddr evmrt.Address) error {
	f.Suicides[refundAddr] = struct{}{}
	return nil
}

func (f *FakeExt) Schedule() *evmrt.Schedule {
	return f.SchedV
}

func (f *FakeExt) EnvInfo() *evmrt.EnvInfo {
	return f.EnvV
}

func (f *FakeExt) Depth() int {
	return f.DepthV
}

func (f *FakeExt) IncSstoreClears() {
	f.SstoreClearsCount++
}

func (f *FakeExt) TraceNextInstruction(pc uint64, op byte) bool {
	return false
}

func (f *FakeExt) TracePrepareExecute(pc uint64, op byte, gasCost uint64) {}

func (f *FakeExt) TraceExecuted(gasUsed uint64, stackPush []evmrt.Word, memDiff *evmrt.MemDiff, storeDiff *evmrt.StoreDiff) {
}

var _ evmrt.Ext = (*FakeExt)(nil)
