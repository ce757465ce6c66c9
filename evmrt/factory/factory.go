// Package factory selects a concrete evmrt.Evm implementation by
// evmrt.VMType, grounded on Parity's evm::factory::Factory (evm/mod.rs
// re-export) and spec.md's "VM factory and type tag" component.
package factory

import (
	"fmt"

	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/wasmvm"
)

// Create returns the Evm registered for vmType.
//
// VMTypeInterpreter has no registered implementation: the stack-machine
// bytecode interpreter's internals are explicitly out of scope (spec.md
// §1), so asking the factory for it is always an error rather than a
// silent stub.
func Create(vmType evmrt.VMType) (evmrt.Evm, error) {
	switch vmType {
	case evmrt.VMTypeWASM:
		return wasmvm.NewInterpreter(), nil
	default:
		return nil, fmt.Errorf("%w: %d", evmrt.ErrUnknownVMType, vmType)
	}
}
