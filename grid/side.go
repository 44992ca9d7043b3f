package grid

// Side defines a side of the global domain.
type Side int

const (
	North Side = iota
	East
	South
	West
)

// Sides lists the four sides in order.
var Sides = []Side{North, East, South, West}

// Name returns the name of the side.
func (s Side) Name() string {
	switch s {
	case North:
		return "North"
	case West:
		return "West"
	case South:
		return "South"
	case East:
		return "East"
	default:
		panic("invalid side")
	}
}

// SideByName resolves a side from its name.
func SideByName(name string) (Side, bool) {
	for _, s := range Sides {
		if s.Name() == name {
			return s, true
		}
	}

	return 0, false
}

// Ghost returns the side whose ghost band holds the padded global
// coordinate, and false for interior cells. West and East span the low and
// high x bands and win the corners.
func (c Config) Ghost(x, y int) (Side, bool) {
	w, h := c.Extent()

	switch {
	case x < c.Radius:
		return West, true
	case x >= w-c.Radius:
		return East, true
	case y < c.Radius:
		return North, true
	case y >= h-c.Radius:
		return South, true
	}

	return 0, false
}
