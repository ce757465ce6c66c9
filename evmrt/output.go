package evmrt

// ReturnData is a reference-counted immutable byte sequence produced by a
// completed frame's RETURN. In Go the reference counting is simply the
// garbage collector retaining the backing array; Slice exposes the
// offset/length view spec.md §3 describes without copying.
type ReturnData struct {
	data []byte
}

// NewReturnData wraps a byte slice as ReturnData. The caller must not
// mutate b afterwards: ReturnData is documented as immutable.
func NewReturnData(b []byte) ReturnData {
	return ReturnData{data: b}
}

// Len returns the number of bytes available.
func (r ReturnData) Len() int {
	return len(r.data)
}

// Slice returns data[offset:offset+length], clamped to the available
// range (short reads past the end yield zero bytes, matching EVM RETURNDATACOPY).
func (r ReturnData) Slice(offset, length int) []byte {
	out := make([]byte, length)
	if offset >= len(r.data) {
		return out
	}
	end := offset + length
	if end > len(r.data) {
		end = len(r.data)
	}
	copy(out, r.data[offset:end])
	return out
}

// Bytes returns the full backing slice; callers must treat it as
// read-only.
func (r ReturnData) Bytes() []byte {
	return r.data
}

// BytesRefKind distinguishes the two Return output disciplines.
type BytesRefKind int

const (
	// BytesRefFixed truncates return data to a fixed-capacity slice.
	BytesRefFixed BytesRefKind = iota
	// BytesRefFlexible replaces a growable buffer with the full return data.
	BytesRefFlexible
)

// BytesRef is the destination for a Return-policy frame's output, mirroring
// Parity's BytesRef::{Fixed, Flexible}.
type BytesRef struct {
	Kind  BytesRefKind
	Fixed []byte  // used when Kind == BytesRefFixed; written in place
	Flex  *[]byte // used when Kind == BytesRefFlexible; replaced wholesale
}

// OutputPolicyKind tags which of the three output disciplines a frame uses.
type OutputPolicyKind int

const (
	// OutputReturn truncates/copies return data into a caller-owned buffer.
	OutputReturn OutputPolicyKind = iota
	// OutputInitContract treats return data as new contract bytecode.
	OutputInitContract
)

// OutputPolicy is the tagged variant assigned at frame construction that
// governs how RET delivers return data to the caller (spec.md §3, §9
// "Output policy as tagged variant").
type OutputPolicy struct {
	Kind OutputPolicyKind

	// Ref is populated when Kind == OutputReturn.
	Ref BytesRef
	// CopySink, if non-nil, additionally receives a full copy of the
	// return data regardless of Kind.
	CopySink *[]byte
}

// NewReturnPolicy builds the Return(fixed-capacity slice, ...) discipline.
func NewReturnPolicy(fixed []byte, copySink *[]byte) OutputPolicy {
	return OutputPolicy{
		Kind:     OutputReturn,
		Ref:      BytesRef{Kind: BytesRefFixed, Fixed: fixed},
		CopySink: copySink,
	}
}

// NewFlexibleReturnPolicy builds the Return(growable buffer, ...) discipline.
func NewFlexibleReturnPolicy(buf *[]byte, copySink *[]byte) OutputPolicy {
	return OutputPolicy{
		Kind:     OutputReturn,
		Ref:      BytesRef{Kind: BytesRefFlexible, Flex: buf},
		CopySink: copySink,
	}
}

// NewInitContractPolicy builds the InitContract(...) discipline.
func NewInitContractPolicy(copySink *[]byte) OutputPolicy {
	return OutputPolicy{Kind: OutputInitContract, CopySink: copySink}
}

// FinalizationKind tags a Finalization's payload shape.
type FinalizationKind int

const (
	// FinalizationKnown carries only the remaining gas.
	FinalizationKnown FinalizationKind = iota
	// FinalizationNeedsReturn carries gas plus return data and the
	// apply-state flag.
	FinalizationNeedsReturn
)

// Finalization is the result of a completed frame (spec.md §3): either
// Known(gas_left) with no payload, or NeedsReturn{gas_left, data,
// apply_state}.
type Finalization struct {
	Kind       FinalizationKind
	GasLeft    uint64
	Data       ReturnData
	ApplyState bool
}

// Known builds a Finalization carrying no return payload.
func Known(gasLeft uint64) Finalization {
	return Finalization{Kind: FinalizationKnown, GasLeft: gasLeft}
}

// NeedsReturn builds a Finalization carrying return data. applyState=false
// means the frame is gracefully reverting: state changes are discarded but
// the refunded remainder of gas is still surrendered to the caller.
func NeedsReturn(gasLeft uint64, data ReturnData, applyState bool) Finalization {
	return Finalization{
		Kind:       FinalizationNeedsReturn,
		GasLeft:    gasLeft,
		Data:       data,
		ApplyState: applyState,
	}
}
