package host

import "github.com/ferrochain/evmrt"

// Eip210Params names the config surface spec.md §6 enumerates for the
// post-transition BLOCKHASH regime: the block number at which lookups
// switch from the last-hashes window to a synthetic contract call, the
// fixed contract address that serves the call, and the gas allowance
// granted to it.
type Eip210Params struct {
	Transition      uint64
	ContractAddress evmrt.Address
	ContractGas     uint64
}

// BlockHash resolves a BLOCKHASH query, dispatching on whichever regime is
// active at env.Number (spec.md §4.2, §9 "blockhash: two distinct regimes").
//
// Pre-transition: looked up directly in env.LastHashes, returning the zero
// hash for any number outside the retained window (spec.md's Open Question
// is resolved here as "return zero" rather than panic/assert, matching the
// conservative choice for a library boundary).
//
// Post-transition: dispatched as a synthetic internal call into the fixed
// blockhash contract, via exec, which the caller supplies as a closure over
// its own nested-dispatch machinery so this package stays free of a direct
// dependency on dispatch.go's executive type.
func BlockHash(env *evmrt.EnvInfo, origin OriginInfo, eip210 Eip210Params, number uint64, code []byte, codeHash evmrt.Hash, exec func(params evmrt.ActionParams) (evmrt.ReturnData, bool)) evmrt.Hash {
	if env.Number >= eip210.Transition {
		return blockHashViaContract(origin, eip210, number, code, codeHash, exec)
	}
	return blockHashFromWindow(env, number)
}

func blockHashFromWindow(env *evmrt.EnvInfo, number uint64) evmrt.Hash {
	if number >= env.Number {
		return evmrt.ZeroHash
	}
	if env.Number > 256 && number < env.Number-256 {
		return evmrt.ZeroHash
	}
	return env.HashAt(number)
}

func blockHashViaContract(origin OriginInfo, eip210 Eip210Params, number uint64, code []byte, codeHash evmrt.Hash, exec func(params evmrt.ActionParams) (evmrt.ReturnData, bool)) evmrt.Hash {
	numberHash := evmrt.WordFromUint64(number).Hash()

	params := evmrt.ActionParams{
		Sender:      origin.Address,
		Address:     eip210.ContractAddress,
		CodeAddress: eip210.ContractAddress,
		Origin:      origin.Origin,
		Gas:         eip210.ContractGas,
		GasPrice:    evmrt.Word{},
		Value:       evmrt.Apparent(origin.Value),
		Code:        code,
		CodeHash:    &codeHash,
		Data:        numberHash[:],
		CallType:    evmrt.CallCall,
	}

	data, ok := exec(params)
	if !ok {
		return evmrt.ZeroHash
	}
	var out evmrt.Hash
	copy(out[:], data.Slice(0, 32))
	return out
}
