package kernel

import "sync"

// barrier blocks every party until all of them have arrived. It is
// reusable.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	gen     int
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)

	return b
}

func (b *barrier) wait() {
	b.do(nil)
}

// do is wait, except that the last party to arrive runs action before it
// releases the others. Every party of one generation passes an equivalent
// action.
func (b *barrier) do(action func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	b.arrived++

	if b.arrived == b.parties {
		if action != nil {
			action()
		}

		b.arrived = 0
		b.gen++
		b.cond.Broadcast()

		return
	}

	for gen == b.gen {
		b.cond.Wait()
	}
}

// generation returns how many times the barrier has opened.
func (b *barrier) generation() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.gen
}
