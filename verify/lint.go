package verify

import (
	"fmt"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
)

// RunLint performs static checks on a configuration and the stepper that
// will run under it. Returns a list of issues found, or an empty list.
func RunLint(cfg grid.Config, stepper kernel.Stepper) []Issue {
	var issues []Issue

	// LAYOUT + SCHEDULE: the invariants every stage relies on
	if err := cfg.Validate(); err != nil {
		issues = append(issues, Issue{
			Type:    classify(cfg),
			Fatal:   true,
			Message: err.Error(),
		})

		return issues
	}

	issues = append(issues, lintRadius(cfg, stepper)...)

	// SCHEDULE: levels above an octahedron are never written
	if extra := cfg.TimeLevels - cfg.MinTimeLevels(); extra > 0 {
		issues = append(issues, Issue{
			Type: IssueSchedule,
			Message: fmt.Sprintf("%d time levels unused, a cycle of %d pyramid steps needs %d",
				extra, cfg.MaxPyramidSteps, cfg.MinTimeLevels()),
			Details: map[string]interface{}{
				"levels": cfg.TimeLevels,
				"needed": cfg.MinTimeLevels(),
			},
		})
	}

	return issues
}

func classify(cfg grid.Config) IssueType {
	if cfg.TimeLevels > 0 && cfg.TimeLevels < cfg.MinTimeLevels() {
		return IssueSchedule
	}

	return IssueLayout
}

func lintRadius(cfg grid.Config, stepper kernel.Stepper) []Issue {
	stencil, ok := stepper.(kernel.Stencil)
	if !ok {
		return []Issue{{
			Type:    IssueLayout,
			Message: "stepper does not report its radius; halo width unchecked",
		}}
	}

	r := stencil.Radius()
	details := map[string]interface{}{"stencil": r, "halo": cfg.Radius}

	switch {
	case r > cfg.Radius:
		return []Issue{{
			Type:    IssueLayout,
			Fatal:   true,
			Message: fmt.Sprintf("stencil radius %d reads past a halo of %d", r, cfg.Radius),
			Details: details,
		}}
	case r < cfg.Radius:
		return []Issue{{
			Type:    IssueLayout,
			Message: fmt.Sprintf("halo of %d is wider than stencil radius %d", cfg.Radius, r),
			Details: details,
		}}
	}

	return nil
}
