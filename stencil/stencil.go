// Package stencil provides ready-made per-cell updates.
package stencil

import (
	"fmt"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
)

// Identity copies every variable unchanged.
type Identity struct{}

// Radius returns 0.
func (Identity) Radius() int { return 0 }

// Step copies the cell.
func (Identity) Step(t *kernel.Tile, at grid.Local, out []float32) {
	for v := range out {
		out[v] = t.At(at, v)
	}
}

// Average3 averages each cell with its two neighbors along y.
type Average3 struct{}

// Radius returns 1.
func (Average3) Radius() int { return 1 }

// Step writes the three-point mean.
func (Average3) Step(t *kernel.Tile, at grid.Local, out []float32) {
	lo := grid.Local{X: at.X, Y: at.Y - 1}
	hi := grid.Local{X: at.X, Y: at.Y + 1}

	for v := range out {
		out[v] = (t.At(lo, v) + t.At(at, v) + t.At(hi, v)) / 3
	}
}

// Heat is the explicit five-point scheme for u_t = Alpha * (u_xx + u_yy),
// using the grid spacing and time step of the tile configuration.
type Heat struct {
	Alpha float32
}

// Radius returns 1.
func (Heat) Radius() int { return 1 }

// Step writes the forward-Euler update.
func (h Heat) Step(t *kernel.Tile, at grid.Local, out []float32) {
	cfg := t.Config()
	rx := h.Alpha * cfg.DT / (cfg.DX * cfg.DX)
	ry := h.Alpha * cfg.DT / (cfg.DY * cfg.DY)

	w := grid.Local{X: at.X - 1, Y: at.Y}
	e := grid.Local{X: at.X + 1, Y: at.Y}
	n := grid.Local{X: at.X, Y: at.Y - 1}
	s := grid.Local{X: at.X, Y: at.Y + 1}

	for v := range out {
		u := t.At(at, v)
		out[v] = u +
			rx*(t.At(w, v)-2*u+t.At(e, v)) +
			ry*(t.At(n, v)-2*u+t.At(s, v))
	}
}

// Box replaces each cell with the mean of the (2R+1)^2 window around it.
// It reads the diagonal neighbors, so it needs filled halo corners.
type Box struct {
	R int
}

// Radius returns the window radius.
func (b Box) Radius() int { return b.R }

// Step writes the window mean.
func (b Box) Step(t *kernel.Tile, at grid.Local, out []float32) {
	side := 2*b.R + 1
	n := float32(side * side)

	for v := range out {
		var sum float32
		for dx := -b.R; dx <= b.R; dx++ {
			for dy := -b.R; dy <= b.R; dy++ {
				sum += t.At(grid.Local{X: at.X + dx, Y: at.Y + dy}, v)
			}
		}
		out[v] = sum / n
	}
}

// ByName resolves a stencil by the name used in run files.
func ByName(name string, radius int, alpha float32) (kernel.Stencil, error) {
	switch name {
	case "identity":
		return Identity{}, nil
	case "average3":
		return Average3{}, nil
	case "heat":
		return Heat{Alpha: alpha}, nil
	case "box":
		return Box{R: radius}, nil
	default:
		return nil, fmt.Errorf("unknown stencil %q", name)
	}
}
