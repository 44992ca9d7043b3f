// Package verify provides host-side checks for swept-rule runs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): fast checks on a configuration and a stepper
//   - LAYOUT checks: sizes and the halo width against the stencil radius
//   - SCHEDULE checks: time levels and split offsets
//
// 2. Functional Simulator (funcsim.go): a single-threaded rendition of the
// four stages
//   - Walks tiles and lanes in order, with no goroutines and no barriers
//   - Produces the same global array as the concurrent kernel, bit for bit
//   - Useful for isolating scheduling bugs from stencil bugs
//
// # Stage Semantics
//
// Every stage reads the global array from a base level and writes the
// levels above it, in the tiles of one frame:
//
//	UpPyramid    base+1 .. base+M      aligned, shrinking from the interior
//	Bridge       base+2 .. base+M      both half-shifted frames, growing
//	                                   across one seam, shrinking along it
//	Octahedron   base+2 .. base+M      opposite frame, growing from the center
//	             base+M+1 .. base+2M   shrinking from the interior
//	DownPyramid  base+2 .. base+M      opposite frame, growing from the center
//
// where M is MaxPyramidSteps. Each level is written once, and no tile
// reads a cell another tile of the same launch writes. Within one local
// step, every in-region cell is computed from the tile before any of them
// is written back.
//
// # Usage Example
//
//	issues := verify.RunLint(cfg, stepper)
//	if verify.HasFatal(issues) {
//	    for _, issue := range issues {
//	        log.Printf("[%s] %s", issue.Type, issue.Message)
//	    }
//	    panic("lint found issues")
//	}
//
//	fs := verify.NewFunctionalSimulator(global, stepper)
//	if err := fs.Run(kernel.UpPyramid, grid.Aligned, 0); err != nil {
//	    panic(err)
//	}
//
// # Limitations
//
// - Unwritten cells are compared as they are, so both sides must prime the
// same levels
// - The cross check keeps a copy of the global array per launch
package verify

import "fmt"

// IssueType categorizes lint issues
type IssueType string

const (
	IssueLayout   IssueType = "LAYOUT"   // Geometry error (sizes, halo, lanes)
	IssueSchedule IssueType = "SCHEDULE" // Time-level or region coverage error
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Fatal   bool // A fatal issue corrupts results; the driver refuses to run
	Message string
	Details map[string]interface{}
}

func (i Issue) String() string {
	severity := "warning"
	if i.Fatal {
		severity = "fatal"
	}

	return fmt.Sprintf("[%s %s] %s", i.Type, severity, i.Message)
}

// HasFatal tells if any issue is fatal.
func HasFatal(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Fatal {
			return true
		}
	}

	return false
}
