package evmrt

// Tier indexes the classic EVM gas-cost tiers (zero, base, verylow, low,
// mid, high, ext, special).
type Tier int

const (
	TierZero Tier = iota
	TierBase
	TierVeryLow
	TierLow
	TierMid
	TierHigh
	TierExt
	TierSpecial
)

// Schedule is the immutable fee and limit table described in spec.md §4.1:
// opcode gas costs and tiers, stack-limit, memory-growth quadratic
// coefficient, per-byte costs for log topics/call data/return data,
// creation-data gas and cap, the exceptional-failed-code-deposit switch,
// EIP-150 call-gas retention, and the CleanDustMode. Selected once from a
// block number (SelectSchedule) and never mutated afterwards.
type Schedule struct {
	// TierGas maps each Tier to its flat gas cost.
	TierGas [8]uint64

	// StackLimit bounds the interpreter's operand stack depth.
	StackLimit int

	// MemoryGasCoefficient is the linear coefficient applied to words of
	// memory beyond the free allowance (cost = words*Coefficient +
	// words^2/QuadDivisor).
	MemoryGasCoefficient uint64
	// MemoryGasQuadDivisor divides the quadratic term.
	MemoryGasQuadDivisor uint64

	// LogGas is the flat per-LOG cost; LogDataGas and LogTopicGas are
	// per-byte/per-topic additions.
	LogGas      uint64
	LogDataGas  uint64
	LogTopicGas uint64

	// CallDataGas is the per-byte cost of a call's input buffer.
	CallDataGas uint64
	// CreateDataGas is the per-byte cost of installing deployed code
	// (spec.md §4.2 ret()'s deployment charge: data.len() * CreateDataGas).
	CreateDataGas uint64
	// CreateDataLimit caps the size of code that may be deployed: code longer
	// than this many bytes fails the deployment check (so zero admits only
	// empty code).
	CreateDataLimit int

	// ExceptionalFailedCodeDeposit selects what happens when a deployment
	// would exceed CreateDataLimit or its gas budget: true fails the frame
	// with OutOfGas, false silently discards the code and returns the gas
	// unspent.
	ExceptionalFailedCodeDeposit bool

	// EIP150CallGasRetention is the divisor of the caller's remaining gas
	// that is retained rather than forwarded to a child call: with the
	// default of 64 the caller keeps 1/64 and at most 63/64 is forwarded,
	// mirroring EIP-150's 63/64 rule.
	EIP150CallGasRetention uint64

	// CleanDust governs whether zero-balance touched accounts are purged
	// after a transfer (spec.md §3).
	CleanDust CleanDustMode

	// Named flat opcode costs the metering context reads directly, outside
	// the generic Tier table.
	CallGas                uint64
	CreateGas              uint64
	SstoreSetGas           uint64
	SstoreResetGas         uint64
	SstoreRefundGas        uint64
	SuicideGas             uint64
	SuicideToNewAccountGas uint64
}

// DefaultSchedule returns the Homestead-era schedule: the baseline every
// later era is expressed as a diff against in SelectSchedule.
func DefaultSchedule() *Schedule {
	return &Schedule{
		TierGas: [8]uint64{0, 2, 3, 5, 8, 10, 20, 0},

		StackLimit: 1024,

		MemoryGasCoefficient: 3,
		MemoryGasQuadDivisor: 512,

		LogGas:      375,
		LogDataGas:  8,
		LogTopicGas: 375,

		CallDataGas:     68,
		CreateDataGas:   200,
		CreateDataLimit: 24576,

		ExceptionalFailedCodeDeposit: true,
		EIP150CallGasRetention:       64,

		CleanDust: CleanDustBasicOnly,

		CallGas:                40,
		CreateGas:              32000,
		SstoreSetGas:           20000,
		SstoreResetGas:         5000,
		SstoreRefundGas:        15000,
		SuicideGas:             0,
		SuicideToNewAccountGas: 25000,
	}
}

// SelectSchedule returns the schedule in effect at blockNumber, switching
// on the EIP-150 transition height. Real deployments key a table of era
// transitions; this runtime only knows the Homestead baseline and the
// EIP-150 step, matching the scenarios its tests exercise.
func SelectSchedule(blockNumber, eip150Transition uint64) *Schedule {
	s := DefaultSchedule()
	if blockNumber >= eip150Transition {
		s.CallGas = 700
		s.SuicideGas = 5000
	}
	return s
}
