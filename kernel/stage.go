package kernel

import (
	"fmt"

	"github.com/sarchlab/sweptrule/grid"
)

// Stage selects which half-cycle program a launch runs.
type Stage int

const (
	UpPyramid Stage = iota
	Bridge
	Octahedron
	DownPyramid
)

// Stages lists every stage in cycle order.
var Stages = []Stage{UpPyramid, Bridge, Octahedron, DownPyramid}

// Name returns the name of the stage.
func (s Stage) Name() string {
	switch s {
	case UpPyramid:
		return "UpPyramid"
	case Bridge:
		return "Bridge"
	case Octahedron:
		return "Octahedron"
	case DownPyramid:
		return "DownPyramid"
	default:
		panic(fmt.Sprintf("invalid stage %d", int(s)))
	}
}

// Levels returns the highest time level above its base a stage writes.
func (s Stage) Levels(cfg grid.Config) int {
	if s == Octahedron {
		return 2 * cfg.MaxPyramidSteps
	}

	return cfg.MaxPyramidSteps
}

// Completes tells if the levels up to the pyramid height are complete after
// the stage.
func (s Stage) Completes() bool {
	return s == Octahedron || s == DownPyramid
}
