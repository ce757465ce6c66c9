// Package evmrt defines the execution environment core: the data model the
// host capability surface, the guest interpreter adapter, and the nested
// dispatcher operate on.
package evmrt

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Word is a 256-bit unsigned integer with wrapping arithmetic and
// big-endian byte serialization, as required by spec.md's data model.
type Word struct {
	v uint256.Int
}

// WordFromUint64 builds a Word from a small non-negative value.
func WordFromUint64(n uint64) Word {
	var w Word
	w.v.SetUint64(n)
	return w
}

// WordFromBytes decodes a Word from a big-endian byte slice of arbitrary
// length (longer inputs are truncated to the low 32 bytes, matching
// uint256's SetBytes semantics).
func WordFromBytes(b []byte) Word {
	var w Word
	w.v.SetBytes(b)
	return w
}

// WordFromHash reinterprets a Hash as a big-endian Word.
func WordFromHash(h Hash) Word {
	return WordFromBytes(h[:])
}

// Bytes32 returns the big-endian 32-byte representation.
func (w Word) Bytes32() [32]byte {
	return w.v.Bytes32()
}

// Bytes returns the big-endian representation with no leading-zero padding.
func (w Word) Bytes() []byte {
	return w.v.Bytes()
}

// Uint64 returns the low 64 bits, discarding anything above.
func (w Word) Uint64() uint64 {
	return w.v.Uint64()
}

// IsZero reports whether the word is zero.
func (w Word) IsZero() bool {
	return w.v.IsZero()
}

// Cmp compares two words, returning -1, 0, or 1.
func (w Word) Cmp(other Word) int {
	return w.v.Cmp(&other.v)
}

// Add returns w+other, wrapping on overflow (uint256.Int arithmetic is
// fixed-width and drops the carry out of the top bit, matching EVM Word
// semantics).
func (w Word) Add(other Word) Word {
	var out Word
	out.v.Add(&w.v, &other.v)
	return out
}

// Sub returns w-other, wrapping on underflow.
func (w Word) Sub(other Word) Word {
	var out Word
	out.v.Sub(&w.v, &other.v)
	return out
}

// Mul returns w*other, wrapping on overflow.
func (w Word) Mul(other Word) Word {
	var out Word
	out.v.Mul(&w.v, &other.v)
	return out
}

// Hash returns the Word reinterpreted as a 32-byte Hash.
func (w Word) Hash() Hash {
	return Hash(w.Bytes32())
}

// Hash is a 32-byte opaque identifier, bit-convertible to and from a Word.
type Hash [32]byte

// ZeroHash is the all-zero Hash.
var ZeroHash Hash

// IsZero reports whether every byte of h is zero.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// ToAddress truncates a Hash to its low 20 bytes, the inverse of
// Address.ToHash.
func (h Hash) ToAddress() Address {
	var a Address
	copy(a[:], h[12:])
	return a
}

// Address is a 20-byte account identifier.
type Address [20]byte

// ZeroAddress is the all-zero Address.
var ZeroAddress Address

// ToHash left-zero-extends an Address to a Hash.
func (a Address) ToHash() Hash {
	var h Hash
	copy(h[12:], a[:])
	return h
}

// Bytes returns the raw 20 bytes.
func (a Address) Bytes() []byte {
	return a[:]
}

// AddressFromBytes builds an Address from a byte slice, left-padding or
// truncating to 20 bytes as needed.
func AddressFromBytes(b []byte) Address {
	var a Address
	if len(b) >= 20 {
		copy(a[:], b[len(b)-20:])
	} else {
		copy(a[20-len(b):], b)
	}
	return a
}

// asCommonAddress and hashFromCommon interoperate with go-ethereum's common
// package, exercised by word_test.go's byte-layout parity checks against
// common.Address/common.Hash.
func (a Address) asCommonAddress() common.Address {
	return common.Address(a)
}

func hashFromCommon(h common.Hash) Hash {
	return Hash(h)
}
