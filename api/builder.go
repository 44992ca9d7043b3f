package api

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/state"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	global   *state.Global
	launcher Launcher
	boundary state.Boundary
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithGlobal sets the global array the driver seeds and reads back.
func (b DriverBuilder) WithGlobal(global *state.Global) DriverBuilder {
	b.global = global
	return b
}

// WithLauncher sets what runs the stages.
func (b DriverBuilder) WithLauncher(launcher Launcher) DriverBuilder {
	b.launcher = launcher
	return b
}

// WithBoundary sets the ghost-cell policy. It defaults to the one the grid
// implies.
func (b DriverBuilder) WithBoundary(boundary state.Boundary) DriverBuilder {
	b.boundary = boundary
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.global == nil || b.launcher == nil {
		panic("driver needs a global array and a launcher")
	}

	cfg := b.global.Config

	boundary := b.boundary
	if boundary == nil {
		boundary = state.DefaultBoundary(cfg)
	}

	if boundary.Wraps() != cfg.Periodic {
		panic(fmt.Sprintf("boundary wraps is %v, grid periodic is %v",
			boundary.Wraps(), cfg.Periodic))
	}

	d := &driverImpl{
		cfg:      cfg,
		global:   b.global,
		launcher: b.launcher,
		boundary: boundary,
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
