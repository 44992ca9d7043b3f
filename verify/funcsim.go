package verify

import (
	"fmt"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
)

// FunctionalSimulator executes the stages one tile and one cell at a time.
type FunctionalSimulator struct {
	cfg     grid.Config
	global  *state.Global
	stepper kernel.Stepper

	TraceStep func(tile grid.TileID, at grid.Local, level int, out []float32)
}

// NewFunctionalSimulator creates a new functional simulator
func NewFunctionalSimulator(
	global *state.Global,
	stepper kernel.Stepper,
) *FunctionalSimulator {
	return &FunctionalSimulator{
		cfg:     global.Config,
		global:  global,
		stepper: stepper,
	}
}

// Run executes one stage in a frame from the base level.
func (fs *FunctionalSimulator) Run(stage kernel.Stage, frame grid.Frame, base int) error {
	if fs.global == nil || fs.stepper == nil {
		return fmt.Errorf("FunctionalSimulator not properly initialized")
	}

	if base < 0 || base+stage.Levels(fs.cfg) >= fs.cfg.TimeLevels {
		return fmt.Errorf("%s from level %d overflows %d time levels",
			stage.Name(), base, fs.cfg.TimeLevels)
	}

	switch stage {
	case kernel.UpPyramid:
		for _, id := range fs.cfg.FrameTiles(frame) {
			t := fs.load(frame, id, base)
			fs.march(t, frame, fs.cfg.UpRegions(), base, fs.cfg.PaddedRegion())
		}
	case kernel.Bridge:
		for _, a := range grid.Axes {
			arm := frame.Flip(a)
			for _, id := range fs.cfg.FrameTiles(arm) {
				t := kernel.NewTile(fs.cfg, id)
				fs.march(t, arm, fs.cfg.BridgeRegions(arm, a), base+1, grid.Region{})
			}
		}
	case kernel.Octahedron:
		for _, id := range fs.cfg.FrameTiles(frame) {
			fs.octahedron(frame, id, base)
		}
	case kernel.DownPyramid:
		for _, id := range fs.cfg.FrameTiles(frame) {
			t := kernel.NewTile(fs.cfg, id)
			fs.march(t, frame, fs.cfg.DownRegions(frame), base+1, grid.Region{})
		}
	default:
		return fmt.Errorf("unknown stage %d", stage)
	}

	return nil
}

func (fs *FunctionalSimulator) octahedron(frame grid.Frame, id grid.TileID, base int) {
	t := kernel.NewTile(fs.cfg, id)

	down := fs.cfg.DownRegions(frame)
	fs.march(t, frame, down, base+1, grid.Region{})

	var held grid.Region
	if len(down) > 0 {
		held = down[len(down)-1]
	}

	mid := base + fs.cfg.MaxPyramidSteps
	fs.exchange(t, frame, mid)

	r := fs.cfg.InteriorRegion()
	for x := r.LX; x < r.UX; x++ {
		for y := r.LY; y < r.UY; y++ {
			at := grid.Local{X: x, Y: y}
			if !held.Contains(at) {
				fs.fetch(t, frame, at, mid)
			}
		}
	}

	fs.march(t, frame, fs.cfg.UpRegions(), mid, fs.cfg.PaddedRegion())
}

// load builds a fresh tile with its halo and interior at one level.
func (fs *FunctionalSimulator) load(frame grid.Frame, id grid.TileID, level int) *kernel.Tile {
	t := kernel.NewTile(fs.cfg, id)

	fs.exchange(t, frame, level)
	fs.fill(t, frame, fs.cfg.InteriorRegion(), grid.Region{}, level)

	return t
}

func (fs *FunctionalSimulator) exchange(t *kernel.Tile, frame grid.Frame, level int) {
	fs.fill(t, frame, fs.cfg.PaddedRegion(), fs.cfg.InteriorRegion(), level)
}

// fill fetches the cells of need that are not in held.
func (fs *FunctionalSimulator) fill(
	t *kernel.Tile,
	frame grid.Frame,
	need, held grid.Region,
	level int,
) {
	for x := need.LX; x < need.UX; x++ {
		for y := need.LY; y < need.UY; y++ {
			at := grid.Local{X: x, Y: y}
			if !held.Contains(at) {
				fs.fetch(t, frame, at, level)
			}
		}
	}
}

func (fs *FunctionalSimulator) fetch(t *kernel.Tile, frame grid.Frame, at grid.Local, level int) {
	x, y, ok := fs.cfg.Place(frame, t.ID, at)
	if !ok {
		return
	}

	for v := 0; v < fs.cfg.NumVars; v++ {
		t.Set(at, v, fs.global.Cell(x, y, v, level))
	}
}

// march computes a whole region from the tile before writing any of it
// back, the serial equivalent of the barrier between the two phases.
func (fs *FunctionalSimulator) march(
	t *kernel.Tile,
	frame grid.Frame,
	regions []grid.Region,
	from int,
	held grid.Region,
) {
	for k, r := range regions {
		level := from + k

		need := r.Grow(fs.cfg.Radius)
		if !held.Covers(need) {
			fs.fill(t, frame, need, held, level)
		}

		type result struct {
			at  grid.Local
			out []float32
		}
		results := make([]result, 0, r.Area())

		for x := r.LX; x < r.UX; x++ {
			for y := r.LY; y < r.UY; y++ {
				at := grid.Local{X: x, Y: y}
				if _, _, ok := fs.cfg.Owns(frame, t.ID, at); !ok {
					continue
				}

				out := make([]float32, fs.cfg.NumVars)
				fs.stepper.Step(t, at, out)
				results = append(results, result{at: at, out: out})
			}
		}

		for x := r.LX; x < r.UX; x++ {
			for y := r.LY; y < r.UY; y++ {
				at := grid.Local{X: x, Y: y}
				if _, _, ok := fs.cfg.Owns(frame, t.ID, at); !ok {
					fs.fetch(t, frame, at, level+1)
				}
			}
		}

		for _, res := range results {
			if fs.TraceStep != nil {
				fs.TraceStep(t.ID, res.at, level+1, res.out)
			}

			gx, gy, _ := fs.cfg.Owns(frame, t.ID, res.at)
			for v, value := range res.out {
				fs.global.SetCell(gx, gy, v, level+1, value)
				t.Set(res.at, v, fs.global.Cell(gx, gy, v, level+1))
			}
		}

		held = r
	}
}
