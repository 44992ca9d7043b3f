// Package record stores the time steps a run produces.
package record

import (
	"sort"
	"sync"

	"github.com/sarchlab/sweptrule/state"
)

// Memory keeps every recorded step in memory.
type Memory struct {
	mu    sync.Mutex
	steps map[int]state.Field
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{steps: make(map[int]state.Field)}
}

// Record stores a copy of the field.
func (m *Memory) Record(step int, f state.Field) error {
	cp := f
	cp.Data = append([]float32(nil), f.Data...)

	m.mu.Lock()
	m.steps[step] = cp
	m.mu.Unlock()

	return nil
}

// Step returns a recorded step.
func (m *Memory) Step(step int) (state.Field, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.steps[step]

	return f, ok
}

// Steps lists the recorded steps in order.
func (m *Memory) Steps() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	steps := make([]int, 0, len(m.steps))
	for s := range m.steps {
		steps = append(steps, s)
	}
	sort.Ints(steps)

	return steps
}
