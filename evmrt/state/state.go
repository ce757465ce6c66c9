// Package state declares the persistent-state collaborator a host
// implementation is built on top of. The trie/database backend itself is
// explicitly out of scope (spec.md §1); only the interface it must satisfy
// lives here.
package state

import "github.com/ferrochain/evmrt"

// Backend is "the state backend" spec.md §6 enumerates: the account and
// storage trie operations evmrt/host.Externalities delegates to. A real
// deployment backs this with a Merkle-Patricia trie; tests back it with an
// in-memory map.
type Backend interface {
	StorageAt(addr evmrt.Address, key evmrt.Hash) (evmrt.Hash, error)
	SetStorage(addr evmrt.Address, key, value evmrt.Hash) error

	Balance(addr evmrt.Address) (evmrt.Word, error)
	Nonce(addr evmrt.Address) (evmrt.Word, error)
	IncNonce(addr evmrt.Address) error

	Code(addr evmrt.Address) ([]byte, error)
	CodeHash(addr evmrt.Address) (evmrt.Hash, error)
	CodeSize(addr evmrt.Address) (int, error)
	InitCode(addr evmrt.Address, code []byte) error

	Exists(addr evmrt.Address) (bool, error)
	ExistsAndNotNull(addr evmrt.Address) (bool, error)

	SubBalance(addr evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error
	TransferBalance(from, to evmrt.Address, amount evmrt.Word, cleanup evmrt.CleanupMode) error
}
