package kernel

import (
	"os"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/state"
)

// Builder can create new kernels.
type Builder struct {
	cfg     grid.Config
	global  *state.Global
	stepper Stepper
	print   bool
}

// NewBuilder creates a builder with tile printing off.
func NewBuilder() Builder {
	return Builder{}
}

// WithConfig sets the grid configuration.
func (b Builder) WithConfig(cfg grid.Config) Builder {
	b.cfg = cfg
	return b
}

// WithGlobal sets the persistent array the kernel reads and writes.
func (b Builder) WithGlobal(global *state.Global) Builder {
	b.global = global
	return b
}

// WithStepper sets the per-cell update.
func (b Builder) WithStepper(stepper Stepper) Builder {
	b.stepper = stepper
	return b
}

// WithPrint turns tile dumps after every local step on or off.
func (b Builder) WithPrint(print bool) Builder {
	b.print = print
	return b
}

// Build creates a kernel.
func (b Builder) Build(name string) *Kernel {
	if b.global == nil {
		panic("kernel needs a global array")
	}

	if b.stepper == nil {
		panic("kernel needs a stepper")
	}

	cfg := b.cfg
	if cfg == (grid.Config{}) {
		cfg = b.global.Config
	}

	return &Kernel{
		name:    name,
		cfg:     cfg,
		global:  b.global,
		stepper: b.stepper,
		print:   b.print,
		out:     os.Stdout,
	}
}
