// Package state holds the persistent global array that carries values
// between stage launches, and the host policies that fill its ghost cells.
package state

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// A Store is a flat array of float32 cells addressed by offset. Stores must
// accept concurrent access to distinct offsets.
type Store interface {
	Read(offset int) float32
	Write(offset int, value float32)
	Len() int
}

const cellBytes = 4

// DeviceMemory is a Store backed by akita storage, standing in for the
// device memory of an accelerator.
type DeviceMemory struct {
	mu      sync.Mutex
	storage *mem.Storage
	cells   int
}

// NewDeviceMemory allocates device memory for the given number of cells.
func NewDeviceMemory(cells int) *DeviceMemory {
	capacity := uint64(cells * cellBytes)
	unit := uint64(4 * mem.KB)

	if rem := capacity % unit; rem != 0 || capacity == 0 {
		capacity += unit - rem
	}

	return &DeviceMemory{
		storage: mem.NewStorage(capacity),
		cells:   cells,
	}
}

// Len returns the number of cells.
func (m *DeviceMemory) Len() int {
	return m.cells
}

// Read returns the cell at offset.
func (m *DeviceMemory) Read(offset int) float32 {
	addr := m.address(offset)

	m.mu.Lock()
	data, err := m.storage.Read(addr, cellBytes)
	m.mu.Unlock()

	if err != nil {
		panic(err)
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}

// Write stores the cell at offset.
func (m *DeviceMemory) Write(offset int, value float32) {
	addr := m.address(offset)

	data := make([]byte, cellBytes)
	binary.LittleEndian.PutUint32(data, math.Float32bits(value))

	m.mu.Lock()
	err := m.storage.Write(addr, data)
	m.mu.Unlock()

	if err != nil {
		panic(err)
	}
}

func (m *DeviceMemory) address(offset int) uint64 {
	if offset < 0 || offset >= m.cells {
		panic(fmt.Sprintf("device memory offset %d out of range [0, %d)",
			offset, m.cells))
	}

	return uint64(offset * cellBytes)
}

// HostMemory is a Store backed by a plain slice.
type HostMemory struct {
	Data []float32
}

// NewHostMemory allocates host memory for the given number of cells.
func NewHostMemory(cells int) *HostMemory {
	return &HostMemory{Data: make([]float32, cells)}
}

// Len returns the number of cells.
func (m *HostMemory) Len() int {
	return len(m.Data)
}

// Read returns the cell at offset.
func (m *HostMemory) Read(offset int) float32 {
	return m.Data[offset]
}

// Write stores the cell at offset.
func (m *HostMemory) Write(offset int, value float32) {
	m.Data[offset] = value
}
