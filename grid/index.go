package grid

import "fmt"

// Local is a coordinate inside a halo-padded tile. Interior cells run from
// Radius to Radius+TileWidth-1 along x.
type Local struct {
	X, Y int
}

func (l Local) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// TileID identifies a tile in the grid of tiles.
type TileID struct {
	X, Y int
}

func (t TileID) String() string {
	return fmt.Sprintf("Tile[%d][%d]", t.X, t.Y)
}

// Tiles lists every tile of the grid, x major.
func (c Config) Tiles() []TileID {
	tiles := make([]TileID, 0, c.NumTiles())
	for x := 0; x < c.TilesX; x++ {
		for y := 0; y < c.TilesY; y++ {
			tiles = append(tiles, TileID{X: x, Y: y})
		}
	}

	return tiles
}

// LaneLocal returns the interior cell owned by the lane with the given id.
func (c Config) LaneLocal(lane int) Local {
	return Local{
		X: lane%c.TileWidth + c.Radius,
		Y: lane/c.TileWidth + c.Radius,
	}
}

// TileOffset maps a padded tile coordinate and a variable to a flat index of
// the tile buffer.
func (c Config) TileOffset(at Local, v int) int {
	return v*c.TileStride() + at.X*c.PaddedH() + at.Y
}

// Global converts a padded tile coordinate to padded global coordinates.
func (c Config) Global(tile TileID, at Local) (x, y int) {
	return tile.X*c.TileWidth + at.X, tile.Y*c.TileHeight + at.Y
}

// GlobalOffset maps a padded tile coordinate of a tile to a flat index of
// the global array.
func (c Config) GlobalOffset(tile TileID, at Local, v, t int) int {
	x, y := c.Global(tile, at)
	return c.Offset(x, y, v, t)
}

// Offset maps padded global coordinates to a flat index of the global array.
func (c Config) Offset(x, y, v, t int) int {
	return x*c.Major() + y + v*c.VarStride() + t*c.TimeStride()
}

// Interior tells if a padded global coordinate lies off the ghost border.
func (c Config) Interior(x, y int) bool {
	w, h := c.Extent()
	return x >= c.Radius && x < w-c.Radius &&
		y >= c.Radius && y < h-c.Radius
}
