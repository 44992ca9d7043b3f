package kernel

import "github.com/sarchlab/sweptrule/grid"

// A Stepper advances one cell by one time step. It reads the cell and its
// neighborhood from the tile and writes the new value of every variable
// into out. It must not write to the tile.
type Stepper interface {
	Step(t *Tile, at grid.Local, out []float32)
}

// StepFunc adapts a plain function to a Stepper.
type StepFunc func(t *Tile, at grid.Local, out []float32)

// Step calls f.
func (f StepFunc) Step(t *Tile, at grid.Local, out []float32) {
	f(t, at, out)
}

// A Stencil is a Stepper that reports how far it reads from the updated
// cell.
type Stencil interface {
	Stepper
	Radius() int
}
