package main

import "github.com/ferrochain/evmrt"

// memoryBackend is a minimal in-memory state.Backend for the CLI harness:
// no persistence, no trie, just enough bookkeeping to drive one frame.
type memoryBackend struct {
	storage map[evmrt.Address]map[evmrt.Hash]evmrt.Hash
	balance map[evmrt.Address]evmrt.Word
	nonce   map[evmrt.Address]evmrt.Word
	code    map[evmrt.Address][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		storage: make(map[evmrt.Address]map[evmrt.Hash]evmrt.Hash),
		balance: make(map[evmrt.Address]evmrt.Word),
		nonce:   make(map[evmrt.Address]evmrt.Word),
		code:    make(map[evmrt.Address][]byte),
	}
}

func (b *memoryBackend) StorageAt(addr evmrt.Address, key evmrt.Hash) (evmrt.Hash, error) {
	if m, ok := b.storage[addr]; ok {
		return m[key], nil
	}
	return evmrt.ZeroHash, nil
}

func (b *memoryBackend) SetStorage(addr evmrt.Address, key, value evmrt.Hash) error {
	m, ok := b.storage[addr]
	if !ok {
		m = make(map[evmrt.Hash]evmrt.Hash)
		b.storage[addr] = m
	}
	m[key] = value
	return nil
}

func (b *memoryBackend) Balance(addr evmrt.Address) (evmrt.Word, error) {
	return b.balance[addr], nil
}

func (b *memoryBackend) Nonce(addr evmrt.Address) (evmrt.Word, error) {
	return b.nonce[addr], nil
}

func (b *memoryBackend) IncNonce(addr evmrt.Address) error {
	b.nonce[addr] = b.nonce[addr].Add(evmrt.WordFromUint64(1))
	return nil
}

func (b *memoryBackend) Code(addr evmrt.Address) ([]byte, error) {
	return b.code[addr], nil
}

func (b *memoryBackend) CodeHash(addr evmrt.Address) (evmrt.Hash, error) {
	return evmrt.ZeroHash, nil
}

func (b *memoryBackend) CodeSize(addr evmrt.Address) (int, error) {
	return len(b.code[addr]), nil
}

func (b *memoryBackend) InitCode(addr evmrt.Address, code []byte) error {
	b.code[addr] = code
	return nil
}

func (b *memoryBackend) Exists(addr evmrt.Address) (bool, error) {
	_, has := b.balance[addr]
	return has, nil
}

func (b *memoryBackend) ExistsAndNotNull(addr evmrt.Address) (bool, error) {
	bal, has := b.balance[addr]
	return has && !bal.IsZero(), nil
}

func (b *memoryBackend) SubBalance(addr evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error {
	b.balance[addr] = b.balance[addr].Sub(amount)
	return nil
}

func (b *memoryBackend) TransferBalance(from, to evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error {
	b.balance[from] = b.balance[from].Sub(amount)
	b.balance[to] = b.balance[to].Add(amount)
	return nil
}
