package host

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ferrochain/evmrt"
)

// ContractAddress derives the address of a newly created contract and the
// keccak hash of its init code, dispatching on scheme (spec.md §4.3).
func ContractAddress(scheme evmrt.CreateAddressScheme, sender evmrt.Address, nonce evmrt.Word, code []byte, salt evmrt.Hash) (evmrt.Address, evmrt.Hash) {
	codeHash := evmrt.Hash(crypto.Keccak256Hash(code))

	switch scheme {
	case evmrt.FromSenderAndNonce:
		return fromSenderAndNonce(sender, nonce), codeHash
	case evmrt.FromSenderSaltAndCodeHash:
		return fromSenderSaltAndCodeHash(sender, salt, codeHash), codeHash
	case evmrt.FromSenderAndCodeHash:
		return fromSenderAndCodeHash(sender, codeHash), codeHash
	default:
		return fromSenderAndNonce(sender, nonce), codeHash
	}
}

// fromSenderAndNonce computes keccak(rlp(sender, nonce))[12:], the classic
// CREATE address scheme.
func fromSenderAndNonce(sender evmrt.Address, nonce evmrt.Word) evmrt.Address {
	enc, err := rlp.EncodeToBytes([]interface{}{
		sender.Bytes(),
		nonce.Uint64(),
	})
	if err != nil {
		// rlp.EncodeToBytes only fails on unsupported types; the literal
		// above is always encodable.
		panic(err)
	}
	h := crypto.Keccak256(enc)
	var addr evmrt.Address
	copy(addr[:], h[12:])
	return addr
}

// fromSenderSaltAndCodeHash computes keccak(0xff || sender || salt ||
// codeHash)[12:], the CREATE2 scheme.
func fromSenderSaltAndCodeHash(sender evmrt.Address, salt, codeHash evmrt.Hash) evmrt.Address {
	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, salt[:]...)
	buf = append(buf, codeHash[:]...)
	h := crypto.Keccak256(buf)
	var addr evmrt.Address
	copy(addr[:], h[12:])
	return addr
}

// fromSenderAndCodeHash computes keccak(sender || codeHash)[12:], used by
// deployments that derive identity from code content rather than a nonce
// or salt.
func fromSenderAndCodeHash(sender evmrt.Address, codeHash evmrt.Hash) evmrt.Address {
	buf := make([]byte, 0, 20+32)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, codeHash[:]...)
	h := crypto.Keccak256(buf)
	var addr evmrt.Address
	copy(addr[:], h[12:])
	return addr
}
