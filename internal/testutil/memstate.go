package testutil

import "github.com/ferrochain/evmrt"

// MemState is a minimal in-memory evmrt/state.Backend for tests, grounded
// on cmd/evmruntest's memoryBackend: no persistence, no trie, just enough
// bookkeeping to drive a frame end to end.
type MemState struct {
	Storage map[evmrt.Address]map[evmrt.Hash]evmrt.Hash
	Bal     map[evmrt.Address]evmrt.Word
	Non     map[evmrt.Address]evmrt.Word
	Cod     map[evmrt.Address][]byte
}

// NewMemState returns an empty MemState.
func NewMemState() *MemState {
	return &MemState{
		Storage: make(map[evmrt.Address]map[evmrt.Hash]evmrt.Hash),
		Bal:     make(map[evmrt.Address]evmrt.Word),
		Non:     make(map[evmrt.Address]evmrt.Word),
		Cod:     make(map[evmrt.Address][]byte),
	}
}

func (m *MemState) StorageAt(addr evmrt.Address, key evmrt.Hash) (evmrt.Hash, error) {
	if s, ok := m.Storage[addr]; ok {
		return s[key], nil
	}
	return evmrt.ZeroHash, nil
}

func (m *MemState) SetStorage(addr evmrt.Address, key, value evmrt.Hash) error {
	s, ok := m.Storage[addr]
	if !ok {
		s = make(map[evmrt.Hash]evmrt.Hash)
		m.Storage[addr] = s
	}
	s[key] = value
	return nil
}

func (m *MemState) Balance(addr evmrt.Address) (evmrt.Word, error) {
	return m.Bal[addr], nil
}

func (m *MemState) Nonce(addr evmrt.Address) (evmrt.Word, error) {
	return m.Non[addr], nil
}

func (m *MemState) IncNonce(addr evmrt.Address) error {
	m.Non[addr] = m.Non[addr].Add(evmrt.WordFromUint64(1))
	return nil
}

func (m *MemState) Code(addr evmrt.Address) ([]byte, error) {
	return m.Cod[addr], nil
}

func (m *MemState) CodeHash(addr evmrt.Address) (evmrt.Hash, error) {
	return evmrt.ZeroHash, nil
}

func (m *MemState) CodeSize(addr evmrt.Address) (int, error) {
	return len(m.Cod[addr]), nil
}

func (m *MemState) InitCode(addr evmrt.Address, code []byte) error {
	m.Cod[addr] = code
	return nil
}

func (m *MemState) Exists(addr evmrt.Address) (bool, error) {
	_, ok := m.Bal[addr]
	return ok, nil
}

func (m *MemState) ExistsAndNotNull(addr evmrt.Address) (bool, error) {
	bal, ok := m.Bal[addr]
	return ok && !bal.IsZero(), nil
}

func (m *MemState) SubBalance(addr evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error {
	m.Bal[addr] = m.Bal[addr].Sub(amount)
	return nil
}

func (m *MemState) TransferBalance(from, to evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error {
	m.Bal[from] = m.Bal[from].Sub(amount)
	m.Bal[to] = m.Bal[to].Add(amount)
	return nil
}
