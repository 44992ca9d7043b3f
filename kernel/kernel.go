// Package kernel runs the swept-rule stages. Every launch starts one
// goroutine per lane for every tile of a frame; the lanes of a tile share
// a tile buffer and a barrier, and march through the valid regions of the
// stage in lockstep. Tiles never wait for each other.
package kernel

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/state"
)

// Kernel launches stages over a fixed tile grid.
type Kernel struct {
	name    string
	cfg     grid.Config
	global  *state.Global
	stepper Stepper

	print   bool
	out     io.Writer
	printMu sync.Mutex
}

// Name returns the name of the kernel.
func (k *Kernel) Name() string {
	return k.name
}

// Config returns the grid configuration of the kernel.
func (k *Kernel) Config() grid.Config {
	return k.cfg
}

// Launch runs one stage, reading the global array from level base and
// writing the levels above it. It returns when every lane has finished.
//
// UpPyramid, Octahedron and DownPyramid run their tiles in the given
// frame. Bridge takes the frame of the pyramid it completes and runs its
// two halves in the frames shifted along one axis each.
func (k *Kernel) Launch(stage Stage, frame grid.Frame, base int) {
	Trace("Launch",
		"Kernel", k.name,
		"Stage", stage.Name(),
		"Frame", frame.String(),
		"Base", base,
	)

	switch stage {
	case UpPyramid:
		k.dispatch(job{frame: frame, program: func(l *lane) { l.upPyramid(base) }})
	case Bridge:
		jobs := make([]job, 0, len(grid.Axes))
		for _, a := range grid.Axes {
			jobs = append(jobs, job{
				frame:   frame.Flip(a),
				program: func(l *lane) { l.bridge(a, base) },
			})
		}
		k.dispatch(jobs...)
	case Octahedron:
		k.dispatch(job{frame: frame, program: func(l *lane) { l.octahedron(base) }})
	case DownPyramid:
		k.dispatch(job{frame: frame, program: func(l *lane) { l.downPyramid(base) }})
	default:
		panic(fmt.Sprintf("unknown stage %d", stage))
	}

	Trace("LaunchDone", "Kernel", k.name, "Stage", stage.Name())
}

// job is a program run by every tile of a frame. A nil tile list means all
// of them.
type job struct {
	frame   grid.Frame
	tiles   []grid.TileID
	program func(l *lane)
}

type group struct {
	kernel *Kernel
	cfg    grid.Config
	frame  grid.Frame
	tile   *Tile
	sync   *barrier
}

type lane struct {
	*group

	id  int
	at  grid.Local
	out []float32

	// x and y are the padded global coordinates of the lane's cell, valid
	// when the cell is owned.
	x, y  int
	owned bool
}

// dispatch starts every lane of every tile of the jobs and waits for all of
// them.
func (k *Kernel) dispatch(jobs ...job) []*group {
	var wg sync.WaitGroup

	lanes := k.cfg.LanesPerTile()
	groups := make([]*group, 0)

	for _, j := range jobs {
		tiles := j.tiles
		if tiles == nil {
			tiles = k.cfg.FrameTiles(j.frame)
		}

		for _, id := range tiles {
			g := &group{
				kernel: k,
				cfg:    k.cfg,
				frame:  j.frame,
				tile:   NewTile(k.cfg, id),
				sync:   newBarrier(lanes),
			}
			groups = append(groups, g)

			for i := 0; i < lanes; i++ {
				l := &lane{
					group: g,
					id:    i,
					at:    k.cfg.LaneLocal(i),
					out:   make([]float32, k.cfg.NumVars),
				}
				l.x, l.y, l.owned = k.cfg.Owns(j.frame, id, l.at)

				wg.Add(1)
				go func() {
					defer wg.Done()
					j.program(l)
				}()
			}
		}
	}

	wg.Wait()

	return groups
}

func (l *lane) upPyramid(base int) {
	l.reset()
	l.exchange(base)
	l.seed(base)
	l.sync.wait()

	l.march(UpPyramid, l.cfg.UpRegions(), base, l.cfg.PaddedRegion())
}

// bridge fills the cells along the seams crossing axis a that the pyramid
// of the previous launch could not reach. The level above base is complete.
func (l *lane) bridge(a grid.Axis, base int) {
	l.reset()

	l.march(Bridge, l.cfg.BridgeRegions(l.frame, a), base+1, grid.Region{})
}

func (l *lane) downPyramid(base int) {
	l.reset()

	l.march(DownPyramid, l.cfg.DownRegions(l.frame), base+1, grid.Region{})
}

// octahedron closes the seams of the previous frame with a down pyramid,
// then builds an up pyramid from the level it completed. The halo of the
// up half comes from earlier launches.
func (l *lane) octahedron(base int) {
	l.reset()

	down := l.cfg.DownRegions(l.frame)
	l.march(Octahedron, down, base+1, grid.Region{})

	var held grid.Region
	if len(down) > 0 {
		held = down[len(down)-1]
	}

	mid := base + l.cfg.MaxPyramidSteps
	l.exchange(mid)
	if !held.Contains(l.at) {
		l.seed(mid)
	}
	l.sync.wait()

	l.march(Octahedron, l.cfg.UpRegions(), mid, l.cfg.PaddedRegion())
}

// reset zeroes the tile. Each lane clears whole columns of constant y, and
// lanes stride over the columns when there are fewer lanes than columns.
func (l *lane) reset() {
	cfg := l.cfg

	for j := l.id; j < cfg.PaddedH(); j += cfg.LanesPerTile() {
		for v := 0; v < cfg.NumVars; v++ {
			for i := 0; i < cfg.PaddedW(); i++ {
				l.tile.Set(grid.Local{X: i, Y: j}, v, 0)
			}
		}
	}

	l.sync.wait()
}

// exchange copies the halo ring of the tile from the global array. The lane
// owning column j copies the near and far x bands of that column. Columns
// inside the y bands are copied whole, which fills the corners.
func (l *lane) exchange(level int) {
	cfg := l.cfg
	r := cfg.Radius

	for j := l.id; j < cfg.PaddedH(); j += cfg.LanesPerTile() {
		band := j < r || j >= cfg.TileHeight+r

		for i := 0; i < cfg.PaddedW(); i++ {
			edge := i < r || i >= cfg.TileWidth+r
			if band || edge {
				l.fetch(grid.Local{X: i, Y: j}, level)
			}
		}
	}

	l.sync.wait()
}

// load copies the cells of need that are not in held from the global
// array, striding over columns like exchange.
func (l *lane) load(level int, need, held grid.Region) {
	cfg := l.cfg

	for j := l.id; j < cfg.PaddedH(); j += cfg.LanesPerTile() {
		for i := 0; i < cfg.PaddedW(); i++ {
			at := grid.Local{X: i, Y: j}
			if need.Contains(at) && !held.Contains(at) {
				l.fetch(at, level)
			}
		}
	}

	l.sync.wait()
}

// fetch copies one cell from the global array. Cells with no place in the
// global array keep their value; no update reads them.
func (l *lane) fetch(at grid.Local, level int) {
	x, y, ok := l.cfg.Place(l.frame, l.tile.ID, at)
	if !ok {
		return
	}

	store := l.kernel.global.Store
	for v := 0; v < l.cfg.NumVars; v++ {
		l.tile.Set(at, v, store.Read(l.cfg.Offset(x, y, v, level)))
	}
}

// seed copies the cell of the lane into the tile.
func (l *lane) seed(level int) {
	l.fetch(l.at, level)
}

// march runs one local step per region, writing level from+k+1 at step k.
// held is the part of the tile that holds level from; whatever else a step
// reads is loaded first. Lanes inside the region compute in the first
// phase and publish in the second; every lane reaches every barrier.
func (l *lane) march(stage Stage, regions []grid.Region, from int, held grid.Region) {
	for k, region := range regions {
		level := from + k

		need := region.Grow(l.cfg.Radius)
		if !held.Covers(need) {
			l.load(level, need, held)
		}

		inside := region.Contains(l.at)
		if inside && l.owned {
			l.kernel.stepper.Step(l.tile, l.at, l.out)
		}
		l.sync.wait()

		if inside {
			l.commit(level + 1)
		}
		l.sync.do(func() { l.report(stage, region, level+1) })

		held = region
	}
}

// commit writes the computed cell to the global array and re-seeds the tile
// from that write. A cell the tile does not own, such as a ghost cell of a
// tile hanging over the domain edge, is read at the new level instead.
func (l *lane) commit(level int) {
	if !l.owned {
		l.seed(level)
		return
	}

	store := l.kernel.global.Store
	for v, value := range l.out {
		off := l.cfg.Offset(l.x, l.y, v, level)
		store.Write(off, value)
		l.tile.Set(l.at, v, store.Read(off))
	}
}

// report runs while every lane of the group is parked.
func (l *lane) report(stage Stage, region grid.Region, level int) {
	slog.Debug("Step",
		"Kernel", l.kernel.name,
		"Tile", l.tile.ID.String(),
		"Frame", l.frame.String(),
		"Stage", stage.Name(),
		"Level", level,
		"Region", region.String(),
	)

	if l.kernel.print {
		l.kernel.printMu.Lock()
		PrintTile(l.kernel.out, l.tile, level)
		l.kernel.printMu.Unlock()
	}
}
