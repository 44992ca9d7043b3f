package state

import (
	"fmt"
	"math"

	"github.com/sarchlab/sweptrule/grid"
)

// Global is the typed view of the persistent array. Coordinates are padded
// global coordinates, so the ghost border starts at zero.
type Global struct {
	Config grid.Config
	Store  Store
}

// NewGlobal wraps a store. The store must hold every cell of the
// configuration.
func NewGlobal(cfg grid.Config, store Store) (*Global, error) {
	if store.Len() < cfg.GlobalLen() {
		return nil, fmt.Errorf("store holds %d cells, grid needs %d",
			store.Len(), cfg.GlobalLen())
	}

	return &Global{Config: cfg, Store: store}, nil
}

// Cell reads one cell.
func (g *Global) Cell(x, y, v, t int) float32 {
	return g.Store.Read(g.Config.Offset(x, y, v, t))
}

// SetCell writes one cell.
func (g *Global) SetCell(x, y, v, t int, value float32) {
	g.Store.Write(g.Config.Offset(x, y, v, t), value)
}

// each visits every padded cell of one variable plane.
func (g *Global) each(fn func(x, y int)) {
	w, h := g.Config.Extent()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			fn(x, y)
		}
	}
}

// CopyLevel copies every cell of time level from into time level to.
func (g *Global) CopyLevel(from, to int) {
	for v := 0; v < g.Config.NumVars; v++ {
		g.each(func(x, y int) {
			g.SetCell(x, y, v, to, g.Cell(x, y, v, from))
		})
	}
}

// Prime marks every interior cell of a time level as unwritten. The ghost
// border keeps whatever the boundary left there.
func (g *Global) Prime(level int) {
	nan := float32(math.NaN())

	for v := 0; v < g.Config.NumVars; v++ {
		g.each(func(x, y int) {
			if g.Config.Interior(x, y) {
				g.SetCell(x, y, v, level, nan)
			}
		})
	}
}

// Unwritten counts the primed interior cells of a time level.
func (g *Global) Unwritten(level int) int {
	n := 0

	for v := 0; v < g.Config.NumVars; v++ {
		g.each(func(x, y int) {
			if g.Config.Interior(x, y) && math.IsNaN(float64(g.Cell(x, y, v, level))) {
				n++
			}
		})
	}

	return n
}

// Load copies an interior field into a time level. Ghost cells are left to
// the boundary policy.
func (g *Global) Load(f Field, level int) error {
	nx, ny := g.interiorSize()
	if f.NumVars != g.Config.NumVars || f.W != nx || f.H != ny {
		return fmt.Errorf("field is %dx%dx%d, grid interior is %dx%dx%d",
			f.W, f.H, f.NumVars, nx, ny, g.Config.NumVars)
	}

	r := g.Config.Radius
	for v := 0; v < f.NumVars; v++ {
		for x := 0; x < f.W; x++ {
			for y := 0; y < f.H; y++ {
				g.SetCell(x+r, y+r, v, level, f.At(x, y, v))
			}
		}
	}

	return nil
}

// Snapshot copies the interior of a time level into a new field.
func (g *Global) Snapshot(level int) Field {
	nx, ny := g.interiorSize()
	f := NewField(nx, ny, g.Config.NumVars)

	r := g.Config.Radius
	for v := 0; v < f.NumVars; v++ {
		for x := 0; x < f.W; x++ {
			for y := 0; y < f.H; y++ {
				f.Set(x, y, v, g.Cell(x+r, y+r, v, level))
			}
		}
	}

	return f
}

func (g *Global) interiorSize() (nx, ny int) {
	w, h := g.Config.Extent()
	return w - 2*g.Config.Radius, h - 2*g.Config.Radius
}
