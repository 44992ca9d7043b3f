package api

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/kernel"
)

// LaunchLogger traces launch hooks.
type LaunchLogger struct{}

// Func logs the stage, frame and step of a launch hook.
func (LaunchLogger) Func(ctx sim.HookCtx) {
	info, ok := ctx.Item.(LaunchInfo)
	if !ok {
		return
	}

	kernel.Trace(ctx.Pos.Name,
		"Stage", info.Stage.Name(),
		"Frame", info.Frame.String(),
		"Step", info.Step,
	)
}

// LaunchCounter counts finished launches per stage.
type LaunchCounter struct {
	Counts map[kernel.Stage]int
}

// NewLaunchCounter creates an empty counter.
func NewLaunchCounter() *LaunchCounter {
	return &LaunchCounter{Counts: make(map[kernel.Stage]int)}
}

// Func counts launch done hooks.
func (c *LaunchCounter) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosLaunchDone {
		return
	}

	info, ok := ctx.Item.(LaunchInfo)
	if !ok {
		return
	}

	c.Counts[info.Stage]++
	slog.Debug("LaunchDone", "Stage", info.Stage.Name(), "Count", c.Counts[info.Stage])
}
