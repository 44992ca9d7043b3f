// Package config assembles swept-rule platforms from run files.
package config

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/api"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
	"github.com/sarchlab/sweptrule/verify"
)

// Platform is everything a run needs, wired together.
type Platform struct {
	Engine sim.Engine
	Global *state.Global
	Kernel *kernel.Kernel
	Driver api.Driver

	// Issues holds the non-fatal lint findings of the configuration.
	Issues []verify.Issue
}

// PlatformBuilder can build platforms.
type PlatformBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	cfg      grid.Config
	stepper  kernel.Stepper
	boundary state.Boundary
	memory   string
	print    bool
}

// MakePlatformBuilder creates a builder with a 1 GHz driver, device memory
// and periodic boundaries.
func MakePlatformBuilder() PlatformBuilder {
	return PlatformBuilder{
		freq:     1 * sim.GHz,
		boundary: state.Periodic{},
		memory:   "device",
	}
}

// WithEngine sets the engine that drives the platform. A serial engine is
// created if none is given.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithConfig sets the grid configuration.
func (b PlatformBuilder) WithConfig(cfg grid.Config) PlatformBuilder {
	b.cfg = cfg
	return b
}

// WithStepper sets the per-cell update.
func (b PlatformBuilder) WithStepper(stepper kernel.Stepper) PlatformBuilder {
	b.stepper = stepper
	return b
}

// WithBoundary sets the ghost-cell policy. The grid is made periodic when
// the boundary wraps; a nil boundary keeps the grid as configured.
func (b PlatformBuilder) WithBoundary(boundary state.Boundary) PlatformBuilder {
	b.boundary = boundary
	return b
}

// WithMemory selects the global array backing, "device" or "host".
func (b PlatformBuilder) WithMemory(kind string) PlatformBuilder {
	b.memory = kind
	return b
}

// WithPrint turns tile dumps on or off.
func (b PlatformBuilder) WithPrint(print bool) PlatformBuilder {
	b.print = print
	return b
}

// Build lints the configuration and creates a platform. Fatal lint issues
// are returned as an error.
func (b PlatformBuilder) Build(name string) (*Platform, error) {
	if b.stepper == nil {
		return nil, fmt.Errorf("%s: no stepper", name)
	}

	boundary := b.boundary
	if boundary == nil {
		boundary = state.DefaultBoundary(b.cfg)
	}
	b.cfg.Periodic = boundary.Wraps()

	issues := verify.RunLint(b.cfg, b.stepper)
	for _, issue := range issues {
		if issue.Fatal {
			return nil, fmt.Errorf("%s: %s", name, issue)
		}
	}

	store, err := b.makeStore()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	global, err := state.NewGlobal(b.cfg, store)
	if err != nil {
		return nil, err
	}

	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	k := kernel.NewBuilder().
		WithGlobal(global).
		WithStepper(b.stepper).
		WithPrint(b.print).
		Build(name + ".Kernel")

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(b.freq).
		WithGlobal(global).
		WithLauncher(k).
		WithBoundary(boundary).
		Build(name + ".Driver")
	driver.AcceptHook(api.LaunchLogger{})

	return &Platform{
		Engine: engine,
		Global: global,
		Kernel: k,
		Driver: driver,
		Issues: issues,
	}, nil
}

func (b PlatformBuilder) makeStore() (state.Store, error) {
	switch b.memory {
	case "", "device":
		return state.NewDeviceMemory(b.cfg.GlobalLen()), nil
	case "host":
		return state.NewHostMemory(b.cfg.GlobalLen()), nil
	default:
		return nil, fmt.Errorf("unknown memory %q", b.memory)
	}
}
