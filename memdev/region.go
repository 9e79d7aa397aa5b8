package memdev

import (
	"io"
	"sync"
)

// Region is a live, byte-addressable memory region: SRAM, flash, or boot
// ROM. It implements the [Provider] interface used by the synthesizer's
// static memory-backed files.
//
// Because cluster assignments for memory-backed files are chosen so that
// LBA*sectorSize equals the region's device address (see Geometry in the
// root exfat package), handlers reduce to a single ReadAt call with no arithmetic
// translation beyond the region's own base offset.
type Region struct {
	name string
	mu   sync.RWMutex
	data []byte
}

// Provider is the read-only memory collaborator boundary: given a device
// address and a destination, copy len(dst) bytes starting at addr.
type Provider interface {
	ReadAt(addr uint32, dst []byte) error
}

// NewRegion allocates a region of the given size, used by tests and
// simulators in place of a real flash/SRAM chip. Production firmware
// supplies a Provider backed by a direct pointer instead.
func NewRegion(name string, size int) *Region {
	return &Region{name: name, data: make([]byte, size)}
}

// Name returns the region's configured name (e.g. "sram", "flash").
func (r *Region) Name() string { return r.name }

// Len returns the region's capacity in bytes.
func (r *Region) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// ReadAt copies len(dst) bytes starting at addr into dst. It returns
// [io.EOF] if the read would run past the end of the region.
func (r *Region) ReadAt(addr uint32, dst []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	end := uint64(addr) + uint64(len(dst))
	if end > uint64(len(r.data)) {
		return io.EOF
	}
	copy(dst, r.data[addr:end])
	return nil
}

// WriteAt installs content into the region for tests and simulators; real
// firmware never calls this, since the region mirrors memory the device
// already owns.
func (r *Region) WriteAt(addr uint32, src []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	end := uint64(addr) + uint64(len(src))
	if end > uint64(len(r.data)) {
		return io.EOF
	}
	copy(r.data[addr:end], src)
	return nil
}

// ProviderFunc adapts a plain function to the Provider interface, letting
// firmware wire a raw pointer-backed reader without defining a named type.
type ProviderFunc func(addr uint32, dst []byte) error

// ReadAt implements Provider.
func (f ProviderFunc) ReadAt(addr uint32, dst []byte) error { return f(addr, dst) }
