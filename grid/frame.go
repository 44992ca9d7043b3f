package grid

import "fmt"

// Axis is one of the two tile axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axes lists both axes.
var Axes = []Axis{AxisX, AxisY}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		panic(fmt.Sprintf("invalid axis %d", int(a)))
	}
}

// Frame places the tile grid. Along a shifted axis every tile starts one
// split earlier, so the seams of the unshifted tiling run through the split
// of the shifted tiles and the other way around.
type Frame struct {
	ShiftX bool
	ShiftY bool
}

// Aligned is the frame the field is seeded in.
var Aligned = Frame{}

// Shifted moves the tiles along both axes.
var Shifted = Frame{ShiftX: true, ShiftY: true}

// Flip toggles one axis.
func (f Frame) Flip(a Axis) Frame {
	if a == AxisX {
		f.ShiftX = !f.ShiftX
	} else {
		f.ShiftY = !f.ShiftY
	}

	return f
}

// Opposite toggles both axes.
func (f Frame) Opposite() Frame {
	return Frame{ShiftX: !f.ShiftX, ShiftY: !f.ShiftY}
}

func (f Frame) String() string {
	switch f {
	case Aligned:
		return "Aligned"
	case Shifted:
		return "Shifted"
	case Frame{ShiftX: true}:
		return "ShiftedX"
	default:
		return "ShiftedY"
	}
}

// FrameTiles lists every tile of a frame, x major. A shifted axis of a
// bounded grid takes one more tile so that both domain edges get a tile
// centered on them. A periodic grid wraps the last tile around instead.
func (c Config) FrameTiles(f Frame) []TileID {
	nx, ny := c.TilesX, c.TilesY
	if !c.Periodic {
		if f.ShiftX {
			nx++
		}

		if f.ShiftY {
			ny++
		}
	}

	tiles := make([]TileID, 0, nx*ny)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			tiles = append(tiles, TileID{X: x, Y: y})
		}
	}

	return tiles
}

// Origin returns the domain coordinates of the first interior cell of a
// tile. They are negative for the first tile along a shifted axis.
func (c Config) Origin(f Frame, tile TileID) (x, y int) {
	sx, sy := c.Split()

	x, y = tile.X*c.TileWidth, tile.Y*c.TileHeight
	if f.ShiftX {
		x -= sx
	}

	if f.ShiftY {
		y -= sy
	}

	return x, y
}

// Place maps a padded tile coordinate of a tile in a frame to padded global
// coordinates. A periodic grid wraps every cell into the interior. On a
// bounded grid, ok is false for cells beyond the ghost border.
func (c Config) Place(f Frame, tile TileID, at Local) (x, y int, ok bool) {
	ox, oy := c.Origin(f, tile)
	x, y = ox+at.X, oy+at.Y

	if c.Periodic {
		r := c.Radius
		w, h := c.Extent()

		return r + wrap(x-r, w-2*r), r + wrap(y-r, h-2*r), true
	}

	w, h := c.Extent()

	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// Owns tells if a padded tile coordinate of a tile in a frame lands on an
// interior cell of the domain, and where.
func (c Config) Owns(f Frame, tile TileID, at Local) (x, y int, ok bool) {
	x, y, ok = c.Place(f, tile, at)
	return x, y, ok && c.Interior(x, y)
}

// Center returns the padded tile coordinates where the down regions of a
// frame start. It is the split along a shifted axis and the tile size minus
// the split along an aligned one; either way the seams of the opposite
// frame cross there.
func (c Config) Center(f Frame) (x, y int) {
	sx, sy := c.Split()

	x, y = c.TileWidth-sx, c.TileHeight-sy
	if f.ShiftX {
		x = sx
	}

	if f.ShiftY {
		y = sy
	}

	return x, y
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
