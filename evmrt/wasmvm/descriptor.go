// Package wasmvm implements the WASM flavor of evmrt.Evm: it instantiates
// a guest module per frame, binds host imports for every evmrt.Ext
// capability, and drives the guest to completion through a 16-byte call
// descriptor written into the guest's own linear memory (spec.md §4.4).
package wasmvm

import "encoding/binary"

// DescriptorSize is the fixed byte length of a call descriptor:
// [payload_ptr(u32 LE), payload_len(u32 LE), result_ptr(u32 LE), result_len(u32 LE)].
const DescriptorSize = 16

// Descriptor is the guest-visible call header (spec.md §4.4). The guest
// reads PayloadPtr/PayloadLen to find its input and writes ResultPtr/
// ResultLen before returning to signal a RETURN.
type Descriptor struct {
	PayloadPtr uint32
	PayloadLen uint32
	ResultPtr  uint32
	ResultLen  uint32
}

// Encode serializes d into the fixed 16-byte little-endian layout.
func (d Descriptor) Encode() [DescriptorSize]byte {
	var buf [DescriptorSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], d.PayloadPtr)
	binary.LittleEndian.PutUint32(buf[4:8], d.PayloadLen)
	binary.LittleEndian.PutUint32(buf[8:12], d.ResultPtr)
	binary.LittleEndian.PutUint32(buf[12:16], d.ResultLen)
	return buf
}

// DecodeDescriptor parses a 16-byte little-endian descriptor out of buf.
func DecodeDescriptor(buf []byte) Descriptor {
	return Descriptor{
		PayloadPtr: binary.LittleEndian.Uint32(buf[0:4]),
		PayloadLen: binary.LittleEndian.Uint32(buf[4:8]),
		ResultPtr:  binary.LittleEndian.Uint32(buf[8:12]),
		ResultLen:  binary.LittleEndian.Uint32(buf[12:16]),
	}
}

// IsEmpty reports whether the guest left both result fields zero, meaning
// it finished without producing RETURN data (spec.md §4.4: "if both zero,
// finishes with Known(gas_left)").
func (d Descriptor) IsEmpty() bool {
	return d.ResultPtr == 0 && d.ResultLen == 0
}
