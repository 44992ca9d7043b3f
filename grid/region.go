package grid

import "fmt"

// Region is a half-open rectangle [LX, UX) x [LY, UY) of padded tile
// coordinates.
type Region struct {
	LX, UX int
	LY, UY int
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.LX, r.UX, r.LY, r.UY)
}

// Contains tells if the coordinate lies inside the region.
func (r Region) Contains(at Local) bool {
	return at.X >= r.LX && at.X < r.UX && at.Y >= r.LY && at.Y < r.UY
}

// Shrink erodes the region by d on every side.
func (r Region) Shrink(d int) Region {
	return Region{LX: r.LX + d, UX: r.UX - d, LY: r.LY + d, UY: r.UY - d}
}

// Grow dilates the region by d on every side.
func (r Region) Grow(d int) Region {
	return r.Shrink(-d)
}

// Empty tells if the region holds no cell.
func (r Region) Empty() bool {
	return r.UX <= r.LX || r.UY <= r.LY
}

// Area returns the number of cells in the region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}

	return (r.UX - r.LX) * (r.UY - r.LY)
}

// Covers tells if o lies entirely within r.
func (r Region) Covers(o Region) bool {
	return o.Empty() ||
		(o.LX >= r.LX && o.UX <= r.UX && o.LY >= r.LY && o.UY <= r.UY)
}

// InteriorRegion is the set of cells a tile owns.
func (c Config) InteriorRegion() Region {
	return Region{
		LX: c.Radius, UX: c.TileWidth + c.Radius,
		LY: c.Radius, UY: c.TileHeight + c.Radius,
	}
}

// PaddedRegion is the whole tile buffer, halo included.
func (c Config) PaddedRegion() Region {
	return Region{LX: 0, UX: c.PaddedW(), LY: 0, UY: c.PaddedH()}
}

// UpRegion is the region updated at local step k of an up pyramid.
func (c Config) UpRegion(k int) Region {
	return c.InteriorRegion().Shrink(k * c.Radius)
}

// DownRegion is the region updated at local step k of a down pyramid in a
// frame. It writes the cells within (k+1) radii of both seams of the
// opposite frame that cross the tile.
func (c Config) DownRegion(f Frame, k int) Region {
	cx, cy := c.Center(f)
	start := Region{
		LX: cx, UX: cx + 2*c.Radius,
		LY: cy, UY: cy + 2*c.Radius,
	}

	return start.Grow(k * c.Radius)
}

// BridgeRegion is the region updated at local step k of a bridge in a
// frame. The bridge straddles the seam that crosses axis a: it widens like
// a down pyramid across the seam and shrinks like an up pyramid along it.
func (c Config) BridgeRegion(f Frame, a Axis, k int) Region {
	across := c.DownRegion(f, k)
	along := c.InteriorRegion().Shrink((k + 1) * c.Radius)

	if a == AxisX {
		return Region{LX: across.LX, UX: across.UX, LY: along.LY, UY: along.UY}
	}

	return Region{LX: along.LX, UX: along.UX, LY: across.LY, UY: across.UY}
}

// UpRegions returns the regions of a whole up pyramid.
func (c Config) UpRegions() []Region {
	regions := make([]Region, c.MaxPyramidSteps)
	for k := range regions {
		regions[k] = c.UpRegion(k)
	}

	return regions
}

// DownRegions returns the regions of a whole down pyramid. The first level
// above a complete one needs no down step, so there is one region fewer
// than in an up pyramid.
func (c Config) DownRegions(f Frame) []Region {
	regions := make([]Region, c.MaxPyramidSteps-1)
	for k := range regions {
		regions[k] = c.DownRegion(f, k)
	}

	return regions
}

// BridgeRegions returns the regions of a whole bridge.
func (c Config) BridgeRegions(f Frame, a Axis) []Region {
	regions := make([]Region, c.MaxPyramidSteps-1)
	for k := range regions {
		regions[k] = c.BridgeRegion(f, a, k)
	}

	return regions
}
