package evmrt

// EnvInfo is the immutable block-header snapshot visible to a transaction's
// whole call tree (spec.md §3), grounded on Parity's env_info::EnvInfo.
type EnvInfo struct {
	Number     uint64
	Author     Address
	Timestamp  uint64
	Difficulty Word
	GasLimit   Word

	// LastHashes holds the most recent block hashes, most-recent first,
	// used by the pre-transition BLOCKHASH lookup (spec.md §4.2, §9).
	LastHashes []Hash
}

// HashAt returns the hash for number, or the zero hash if it falls outside
// the retained window, mirroring Parity's last_hashes indexing.
func (e *EnvInfo) HashAt(number uint64) Hash {
	if number >= e.Number {
		return ZeroHash
	}
	distance := e.Number - number
	idx := int(distance) - 1
	if idx < 0 || idx >= len(e.LastHashes) {
		return ZeroHash
	}
	return e.LastHashes[idx]
}
