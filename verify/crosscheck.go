package verify

import (
	"fmt"
	"math"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/api"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
)

// Mismatch describes the first cell where two global arrays disagree.
type Mismatch struct {
	Stage        kernel.Stage
	Frame        grid.Frame
	Launch       int
	X, Y, V, T   int
	Want, Actual float32
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("launch %d %s in %s: cell (%d, %d) var %d level %d is %v, "+
		"functional simulator has %v",
		m.Launch, m.Stage.Name(), m.Frame, m.X, m.Y, m.V, m.T, m.Actual, m.Want)
}

// simLauncher runs stages on a functional simulator and keeps the first
// error.
type simLauncher struct {
	fs  *FunctionalSimulator
	err error
}

func (l *simLauncher) Launch(stage kernel.Stage, frame grid.Frame, base int) {
	if l.err == nil {
		l.err = l.fs.Run(stage, frame, base)
	}
}

// launchCapture copies the whole global array after every launch.
type launchCapture struct {
	global   *state.Global
	launches []api.LaunchInfo
	stores   [][]float32
}

func (c *launchCapture) Func(ctx sim.HookCtx) {
	if ctx.Pos != api.HookPosLaunchDone {
		return
	}

	info, ok := ctx.Item.(api.LaunchInfo)
	if !ok {
		return
	}

	n := c.global.Config.GlobalLen()
	store := make([]float32, n)
	for i := range store {
		store[i] = c.global.Store.Read(i)
	}

	c.launches = append(c.launches, info)
	c.stores = append(c.stores, store)
}

// CrossCheck runs a whole cycle twice, once on the concurrent kernel over
// device memory and once on the functional simulator over host memory, and
// returns a *Mismatch for the first cell that differs after any launch. A
// nil boundary selects the one the grid implies; otherwise the grid wraps
// when the boundary does.
func CrossCheck(
	cfg grid.Config,
	stepper kernel.Stepper,
	boundary state.Boundary,
	init state.Field,
) error {
	if boundary == nil {
		boundary = state.DefaultBoundary(cfg)
	}
	cfg.Periodic = boundary.Wraps()

	device, err := state.NewGlobal(cfg, state.NewDeviceMemory(cfg.GlobalLen()))
	if err != nil {
		return err
	}

	host, err := state.NewGlobal(cfg, state.NewHostMemory(cfg.GlobalLen()))
	if err != nil {
		return err
	}

	k := kernel.NewBuilder().
		WithGlobal(device).
		WithStepper(stepper).
		Build("CrossCheck.Kernel")
	fs := &simLauncher{fs: NewFunctionalSimulator(host, stepper)}

	actual, err := runCaptured("CrossCheck.Device", device, k, boundary, init)
	if err != nil {
		return err
	}

	want, err := runCaptured("CrossCheck.Host", host, fs, boundary, init)
	if err != nil {
		return err
	}

	if fs.err != nil {
		return fs.err
	}

	for i := range want.stores {
		info := want.launches[i]
		if m := compare(cfg, want.stores[i], actual.stores[i]); m != nil {
			m.Stage, m.Frame, m.Launch = info.Stage, info.Frame, i
			return m
		}
	}

	return nil
}

func runCaptured(
	name string,
	global *state.Global,
	launcher api.Launcher,
	boundary state.Boundary,
	init state.Field,
) (*launchCapture, error) {
	d := api.DriverBuilder{}.
		WithEngine(sim.NewSerialEngine()).
		WithFreq(1 * sim.GHz).
		WithGlobal(global).
		WithLauncher(launcher).
		WithBoundary(boundary).
		Build(name)

	capture := &launchCapture{global: global}
	d.AcceptHook(capture)

	if err := d.Seed(init); err != nil {
		return nil, err
	}

	d.Plan(1)

	if err := d.Run(); err != nil {
		return nil, err
	}

	return capture, nil
}

func compare(cfg grid.Config, want, actual []float32) *Mismatch {
	w, h := cfg.Extent()

	for t := 0; t < cfg.TimeLevels; t++ {
		for v := 0; v < cfg.NumVars; v++ {
			for x := 0; x < w; x++ {
				for y := 0; y < h; y++ {
					off := cfg.Offset(x, y, v, t)
					a, b := want[off], actual[off]

					if math.Float32bits(a) != math.Float32bits(b) {
						return &Mismatch{
							X: x, Y: y, V: v, T: t,
							Want: a, Actual: b,
						}
					}
				}
			}
		}
	}

	return nil
}
