package state

import "github.com/sarchlab/sweptrule/grid"

// A Boundary fills the ghost border of one time level. Stages never look at
// the domain edge themselves; they read whatever the boundary left there.
//
// A boundary that wraps needs a periodic grid, so that tiles hanging over
// one edge of the domain read the cells of the other.
type Boundary interface {
	Apply(g *Global, level int)
	Wraps() bool
}

// DefaultBoundary returns the boundary a grid implies when none is given.
func DefaultBoundary(cfg grid.Config) Boundary {
	if cfg.Periodic {
		return Periodic{}
	}

	return Fixed{}
}

// Periodic wraps the domain around in both axes.
type Periodic struct{}

// Apply copies the opposite interior edge into every ghost cell.
func (Periodic) Apply(g *Global, level int) {
	cfg := g.Config
	nx, ny := g.interiorSize()
	r := cfg.Radius

	for v := 0; v < cfg.NumVars; v++ {
		g.each(func(x, y int) {
			if cfg.Interior(x, y) {
				return
			}

			sx := r + wrap(x-r, nx)
			sy := r + wrap(y-r, ny)
			g.SetCell(x, y, v, level, g.Cell(sx, sy, v, level))
		})
	}
}

// Wraps is true.
func (Periodic) Wraps() bool {
	return true
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Fixed holds every ghost cell of a side at a constant value. Corners take
// the value of the west or east side.
type Fixed struct {
	Values map[grid.Side]float32
}

// Wraps is false.
func (Fixed) Wraps() bool {
	return false
}

// Apply writes the side constants into the ghost border.
func (b Fixed) Apply(g *Global, level int) {
	cfg := g.Config

	for v := 0; v < cfg.NumVars; v++ {
		g.each(func(x, y int) {
			side, ok := cfg.Ghost(x, y)
			if !ok {
				return
			}

			g.SetCell(x, y, v, level, b.Values[side])
		})
	}
}
