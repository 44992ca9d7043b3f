// Package grid defines the geometry shared by every stage of a swept run:
// the frozen configuration record, typed coordinates, index mapping and the
// valid regions of the pyramids.
package grid

import (
	"errors"
	"fmt"
)

// Config is the immutable description of a run. It is passed by value to
// every component so that no stage depends on ambient state.
type Config struct {
	// Radius is the stencil radius and the width of the halo ring.
	Radius int

	// TileWidth and TileHeight are the interior sizes of one tile along x
	// and y.
	TileWidth  int
	TileHeight int

	NumVars         int
	MaxPyramidSteps int

	// TilesX and TilesY are the number of tiles along each axis.
	TilesX int
	TilesY int

	// TimeLevels is the number of time levels kept in the global array.
	TimeLevels int

	DX float32
	DY float32
	DT float32

	// SplitX and SplitY are how far the shifted frames move the tiles back.
	// Zero selects half a tile.
	SplitX int
	SplitY int

	// Periodic wraps the domain around both axes. Shifted tiles then wrap
	// instead of reaching past the ghost border.
	Periodic bool
}

// PaddedW returns the padded tile extent along x.
func (c Config) PaddedW() int {
	return c.TileWidth + 2*c.Radius
}

// PaddedH returns the padded tile extent along y.
func (c Config) PaddedH() int {
	return c.TileHeight + 2*c.Radius
}

// TileStride is the distance between two variables in a tile buffer.
func (c Config) TileStride() int {
	return c.PaddedW() * c.PaddedH()
}

// TileLen is the number of cells in one tile buffer.
func (c Config) TileLen() int {
	return c.TileStride() * c.NumVars
}

// LanesPerTile is the number of lanes in one tile-processing group, one per
// interior cell.
func (c Config) LanesPerTile() int {
	return c.TileWidth * c.TileHeight
}

// Extent returns the padded extent of the global array along x and y.
func (c Config) Extent() (w, h int) {
	return c.TilesX*c.TileWidth + 2*c.Radius, c.TilesY*c.TileHeight + 2*c.Radius
}

// Major is the stride of the x axis in the global array.
func (c Config) Major() int {
	_, h := c.Extent()
	return h
}

// VarStride is the distance between two variables in the global array.
func (c Config) VarStride() int {
	w, h := c.Extent()
	return w * h
}

// TimeStride is the distance between two time levels in the global array.
func (c Config) TimeStride() int {
	return c.VarStride() * c.NumVars
}

// GlobalLen is the number of cells in the global array.
func (c Config) GlobalLen() int {
	return c.TimeStride() * c.TimeLevels
}

// NumTiles returns the number of tiles in the grid.
func (c Config) NumTiles() int {
	return c.TilesX * c.TilesY
}

// Split returns the effective split offsets, resolving zero to the tile
// center.
func (c Config) Split() (sx, sy int) {
	sx, sy = c.SplitX, c.SplitY
	if sx == 0 {
		sx = c.TileWidth / 2
	}

	if sy == 0 {
		sy = c.TileHeight / 2
	}

	return sx, sy
}

// MinTimeLevels is the number of time levels an octahedron touches: the
// complete level it starts from, the pyramid it finishes and the pyramid it
// builds.
func (c Config) MinTimeLevels() int {
	return 2*c.MaxPyramidSteps + 1
}

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid grid config")

// Validate checks the invariants every stage relies on.
func (c Config) Validate() error {
	sizes := []struct {
		name  string
		value int
	}{
		{"radius", c.Radius},
		{"tile width", c.TileWidth},
		{"tile height", c.TileHeight},
		{"variables", c.NumVars},
		{"pyramid steps", c.MaxPyramidSteps},
		{"tiles x", c.TilesX},
		{"tiles y", c.TilesY},
		{"time levels", c.TimeLevels},
	}

	for _, s := range sizes {
		if s.value < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d",
				ErrInvalidConfig, s.name, s.value)
		}
	}

	reach := 2 * c.MaxPyramidSteps * c.Radius
	if reach > c.TileWidth || reach > c.TileHeight {
		return fmt.Errorf("%w: %d pyramid steps of radius %d need a %dx%d tile",
			ErrInvalidConfig, c.MaxPyramidSteps, c.Radius, reach, reach)
	}

	if c.TimeLevels < c.MinTimeLevels() {
		return fmt.Errorf("%w: %d time levels cannot hold two half-cycles of %d steps",
			ErrInvalidConfig, c.TimeLevels, c.MaxPyramidSteps)
	}

	sx, sy := c.Split()
	if err := c.checkSplit("x", sx, c.TileWidth); err != nil {
		return err
	}

	return c.checkSplit("y", sy, c.TileHeight)
}

func (c Config) checkSplit(axis string, split, tile int) error {
	lo := c.MaxPyramidSteps * c.Radius
	hi := tile - c.MaxPyramidSteps*c.Radius

	if split < lo || split > hi {
		return fmt.Errorf("%w: split %s=%d outside [%d, %d]",
			ErrInvalidConfig, axis, split, lo, hi)
	}

	return nil
}
