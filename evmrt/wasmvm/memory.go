package wasmvm

import (
	"errors"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// ErrBadBounds signals a guest-supplied offset/length pair falling outside
// the instance's linear memory, grounded on the teacher's
// ErrBadLowerBounds/ErrBadUpperBounds checks in MemLoad/MemStore
// (arwen/contexts/runtime.go).
var ErrBadBounds = errors.New("wasmvm: memory access out of bounds")

// wasmPageSize is the WASM linear-memory page size in bytes, matching the
// constant gas.go's ChargeMemoryGrowth assumes.
const wasmPageSize = 65536

// Memory wraps a guest instance's linear memory with the bounds-checked
// read/write helpers every host import uses (spec.md §4.4's "memory
// read/write helpers").
type Memory struct {
	mem *wasmer.Memory
}

// NewMemory wraps mem.
func NewMemory(mem *wasmer.Memory) *Memory {
	return &Memory{mem: mem}
}

// Load copies length bytes starting at offset out of guest memory.
func (m *Memory) Load(offset, length uint32) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	data := m.mem.Data()
	size := uint32(len(data))
	end := offset + length
	if end < offset || end > size {
		return nil, ErrBadBounds
	}
	out := make([]byte, length)
	copy(out, data[offset:end])
	return out, nil
}

// LoadMultiple loads len(lengths) consecutive slices starting at offset,
// each following directly after the previous in guest memory.
func (m *Memory) LoadMultiple(offset uint32, lengths []uint32) ([][]byte, error) {
	out := make([][]byte, len(lengths))
	for i, l := range lengths {
		b, err := m.Load(offset, l)
		if err != nil {
			return nil, err
		}
		out[i] = b
		offset += l
	}
	return out, nil
}

// Store writes data into guest memory starting at offset.
func (m *Memory) Store(offset uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	view := m.mem.Data()
	size := uint32(len(view))
	end := offset + uint32(len(data))
	if end < offset || end > size {
		return ErrBadBounds
	}
	copy(view[offset:end], data)
	return nil
}

// Pages returns the instance's current linear memory size in 64KiB pages.
func (m *Memory) Pages() uint32 {
	return uint32(len(m.mem.Data())) / wasmPageSize
}

// LoadDescriptor reads the fixed-size call descriptor at offset.
func (m *Memory) LoadDescriptor(offset uint32) (Descriptor, error) {
	b, err := m.Load(offset, DescriptorSize)
	if err != nil {
		return Descriptor{}, err
	}
	return DecodeDescriptor(b), nil
}

// StoreDescriptor writes d at offset.
func (m *Memory) StoreDescriptor(offset uint32, d Descriptor) error {
	enc := d.Encode()
	return m.Store(offset, enc[:])
}
