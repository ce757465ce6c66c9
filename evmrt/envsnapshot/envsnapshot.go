// Package envsnapshot builds an evmrt.EnvInfo from a live chain head,
// maintaining the bounded last-hashes window the pre-transition BLOCKHASH
// lookup reads (spec.md §9). The EnvInfo type itself lives in evmrt, since
// evmrt.Ext implementations construct one directly in tests without
// depending on this package.
package envsnapshot

import "github.com/ferrochain/evmrt"

// MaxLastHashes is the retained window size, matching the classic 256-block
// BLOCKHASH horizon.
const MaxLastHashes = 256

// Builder accumulates a bounded ring of recent block hashes and stamps out
// EnvInfo snapshots as new blocks arrive.
type Builder struct {
	hashes []evmrt.Hash // most-recent first
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Advance records the hash of the block just closed, evicting the
// oldest retained entry once the window is full.
func (b *Builder) Advance(hash evmrt.Hash) {
	b.hashes = append([]evmrt.Hash{hash}, b.hashes...)
	if len(b.hashes) > MaxLastHashes {
		b.hashes = b.hashes[:MaxLastHashes]
	}
}

// Snapshot returns the EnvInfo for the block about to execute.
func (b *Builder) Snapshot(number uint64, author evmrt.Address, timestamp uint64, difficulty, gasLimit evmrt.Word) *evmrt.EnvInfo {
	hashes := make([]evmrt.Hash, len(b.hashes))
	copy(hashes, b.hashes)
	return &evmrt.EnvInfo{
		Number:     number,
		Author:     author,
		Timestamp:  timestamp,
		Difficulty: difficulty,
		GasLimit:   gasLimit,
		LastHashes: hashes,
	}
}
