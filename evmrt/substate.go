package evmrt

// LogEntry is one emitted event: an address, its topics, and an opaque
// payload.
type LogEntry struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

// CleanDustMode governs whether a zero-balance touched account is purged
// from state after a transfer, mirroring Parity's CleanupMode /
// schedule.CleanDustMode.
type CleanDustMode int

const (
	// CleanDustOff never purges zero-balance accounts.
	CleanDustOff CleanDustMode = iota
	// CleanDustBasicOnly purges zero-balance non-contract accounts only.
	CleanDustBasicOnly
	// CleanDustWithCodeAndStorage purges any zero-balance account touched
	// during the transaction, including contracts.
	CleanDustWithCodeAndStorage
)

// CleanupMode is the concrete policy applied to one balance mutation,
// derived from a Substate plus a Schedule at the point of transfer.
type CleanupMode struct {
	Mode CleanDustMode
	// TouchedSet receives addresses zeroed under this mode, so the caller
	// can purge them; nil disables tracking.
	TouchedSet map[Address]struct{}
}

// NoEmpty is the cleanup mode matching Parity's CleanupMode::NoEmpty: never
// purge the account, used by Suicide-to-self (spec.md §9 Open Questions).
func NoEmpty() CleanupMode {
	return CleanupMode{Mode: CleanDustOff}
}

// Substate is the append-only, per-transaction accumulator described in
// spec.md §3. A child frame's Substate merges into its parent only on
// success; on failure it is discarded whole.
type Substate struct {
	Logs             []LogEntry
	Suicides         map[Address]struct{}
	ContractsCreated []Address
	SstoreClears     uint64
	TouchedAccounts  map[Address]struct{}
}

// NewSubstate returns an empty Substate ready for use.
func NewSubstate() *Substate {
	return &Substate{
		Suicides:        make(map[Address]struct{}),
		TouchedAccounts: make(map[Address]struct{}),
	}
}

// Touch records that addr was observed during execution, regardless of
// whether it was mutated.
func (s *Substate) Touch(addr Address) {
	s.TouchedAccounts[addr] = struct{}{}
}

// MergeFrom folds a completed child frame's Substate into s. Called only
// when the child frame returned successfully; a failing child's Substate
// must never reach this call.
func (s *Substate) MergeFrom(child *Substate) {
	s.Logs = append(s.Logs, child.Logs...)
	s.ContractsCreated = append(s.ContractsCreated, child.ContractsCreated...)
	s.SstoreClears += child.SstoreClears
	for addr := range child.Suicides {
		s.Suicides[addr] = struct{}{}
	}
	for addr := range child.TouchedAccounts {
		s.TouchedAccounts[addr] = struct{}{}
	}
}

// ToCleanupMode derives the CleanupMode to apply to a balance transfer,
// mirroring Parity's Substate::to_cleanup_mode(schedule).
func (s *Substate) ToCleanupMode(clean CleanDustMode) CleanupMode {
	switch clean {
	case CleanDustOff:
		return CleanupMode{Mode: CleanDustOff}
	default:
		return CleanupMode{Mode: clean, TouchedSet: s.TouchedAccounts}
	}
}
