package wasmvm

import "github.com/ferrochain/evmrt"

// Meter tracks the remaining gas budget for one frame, decremented by the
// host imports that charge it (storage_load, storage_store, get_balance,
// get_external_balance, block_hash, create_contract, call_contract,
// write_log) and on linear-memory growth; get_code_size, get_code,
// self_destruct and get_gas_left charge nothing. Grounded on
// the teacher's meteringContext.UseGas/GasLeft contract
// (arwen/contexts/metering_test.go) collapsed from "points used, tracked by
// the engine" down to a plain counter, since wasmer-go has no built-in
// metering middleware in the retrieval pack's API surface.
type Meter struct {
	sched    *evmrt.Schedule
	provided uint64
	used     uint64
	pages    uint32 // last observed memory size, in 64KiB pages
}

// NewMeter starts a meter with gasProvided available.
func NewMeter(sched *evmrt.Schedule, gasProvided uint64) *Meter {
	return &Meter{sched: sched, provided: gasProvided}
}

// GasLeft returns the unused remainder.
func (m *Meter) GasLeft() uint64 {
	if m.used >= m.provided {
		return 0
	}
	return m.provided - m.used
}

// UseGas charges amount against the remaining budget, returning
// evmrt.ErrOutOfGas if it would go negative.
func (m *Meter) UseGas(amount uint64) error {
	if amount > m.GasLeft() {
		m.used = m.provided
		return evmrt.ErrOutOfGas
	}
	m.used += amount
	return nil
}

// ChargeMemoryGrowth charges for growing linear memory from its previously
// observed size to newPages (64KiB pages), using the schedule's quadratic
// coefficient, and records newPages as the new baseline. Pages that were
// already paid for are free, matching the classic "pay once per highwater
// mark" memory-expansion rule.
func (m *Meter) ChargeMemoryGrowth(newPages uint32) error {
	if newPages <= m.pages {
		return nil
	}
	grown := uint64(newPages - m.pages)
	words := grown * (65536 / 32)
	cost := words*m.sched.MemoryGasCoefficient + (words*words)/m.sched.MemoryGasQuadDivisor
	m.pages = newPages
	return m.UseGas(cost)
}

// ChargeTier charges the flat cost for a generic opcode tier.
func (m *Meter) ChargeTier(tier evmrt.Tier) error {
	return m.UseGas(m.sched.TierGas[tier])
}
