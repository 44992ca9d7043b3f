// Package api defines the driver API for swept-rule runs.
package api

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
)

// Driver orchestrates a run from the host side.
type Driver interface {
	sim.Component

	// Seed loads the initial field into time level 0, fills the ghost
	// cells of every level and records it as step 0.
	Seed(f state.Field) error

	// Plan queues a full swept cycle: one UpPyramid and a Bridge, then the
	// given number of Octahedron and Bridge pairs, then one DownPyramid.
	Plan(octahedra int)

	// Enqueue queues a single stage.
	Enqueue(stage kernel.Stage)

	// AddRecorder registers a recorder that receives every completed
	// time step.
	AddRecorder(r Recorder)

	// Run will run all the stages that have been queued.
	Run() error

	// Latest returns the last completed time step and its field.
	Latest() (step int, f state.Field)
}

// A Launcher runs one stage over every tile of a frame and returns when it
// is done.
type Launcher interface {
	Launch(stage kernel.Stage, frame grid.Frame, base int)
}

// A Recorder stores completed time steps.
type Recorder interface {
	Record(step int, f state.Field) error
}

// HookPosLaunchStart marks when the driver is about to launch a stage.
var HookPosLaunchStart = &sim.HookPos{Name: "Launch Start"}

// HookPosLaunchDone marks when the driver has finished the host work that
// follows a launch.
var HookPosLaunchDone = &sim.HookPos{Name: "Launch Done"}

// LaunchInfo is the item passed to launch hooks.
type LaunchInfo struct {
	Stage kernel.Stage
	Frame grid.Frame
	Step  int
}

type driverImpl struct {
	*sim.TickingComponent

	cfg       grid.Config
	global    *state.Global
	launcher  Launcher
	boundary  state.Boundary
	recorders []Recorder

	launchTasks []*launchTask
	frame       grid.Frame
	step        int
	err         error
}

type launchTask struct {
	stage kernel.Stage
}

// Tick runs at most one queued stage.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.err != nil || len(d.launchTasks) == 0 {
		return false
	}

	task := d.launchTasks[0]
	d.launchTasks = d.launchTasks[1:]

	d.err = d.doLaunch(task)

	return true
}

func (d *driverImpl) doLaunch(task *launchTask) error {
	switch task.stage {
	case kernel.UpPyramid:
		d.frame = grid.Aligned
	case kernel.Octahedron, kernel.DownPyramid:
		d.frame = d.frame.Opposite()
	}

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosLaunchStart,
		Item:   LaunchInfo{Stage: task.stage, Frame: d.frame, Step: d.step},
	})

	d.launcher.Launch(task.stage, d.frame, 0)

	if task.stage.Completes() {
		if err := d.complete(task.stage); err != nil {
			return err
		}
	}

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosLaunchDone,
		Item:   LaunchInfo{Stage: task.stage, Frame: d.frame, Step: d.step},
	})

	return nil
}

// complete records the levels a stage finished and moves the last of them
// to level 0. The partial levels an octahedron wrote above it move along.
func (d *driverImpl) complete(stage kernel.Stage) error {
	m := d.cfg.MaxPyramidSteps

	for level := 1; level <= m; level++ {
		if err := d.record(d.step+level, level); err != nil {
			return err
		}
	}

	d.step += m

	carry := 0
	if stage == kernel.Octahedron {
		carry = m
	}

	for level := 0; level <= carry; level++ {
		d.global.CopyLevel(m+level, level)
	}

	d.prime(carry + 1)

	return nil
}

// prime marks every level from the given one up as unwritten.
func (d *driverImpl) prime(from int) {
	for level := from; level < d.cfg.TimeLevels; level++ {
		d.global.Prime(level)
	}
}

func (d *driverImpl) record(step, level int) error {
	if len(d.recorders) == 0 {
		return nil
	}

	f := d.global.Snapshot(level)
	for _, r := range d.recorders {
		if err := r.Record(step, f); err != nil {
			return fmt.Errorf("recording step %d: %w", step, err)
		}
	}

	return nil
}

// Seed loads the initial field.
func (d *driverImpl) Seed(f state.Field) error {
	if err := d.global.Load(f, 0); err != nil {
		return err
	}

	d.boundary.Apply(d.global, 0)
	for level := 1; level < d.cfg.TimeLevels; level++ {
		d.global.CopyLevel(0, level)
	}

	d.prime(1)
	d.frame = grid.Aligned
	d.step = 0

	return d.record(0, 0)
}

// Plan queues a full swept cycle.
func (d *driverImpl) Plan(octahedra int) {
	d.Enqueue(kernel.UpPyramid)
	d.Enqueue(kernel.Bridge)

	for i := 0; i < octahedra; i++ {
		d.Enqueue(kernel.Octahedron)
		d.Enqueue(kernel.Bridge)
	}

	d.Enqueue(kernel.DownPyramid)
}

// Enqueue queues a single stage.
func (d *driverImpl) Enqueue(stage kernel.Stage) {
	d.launchTasks = append(d.launchTasks, &launchTask{stage: stage})
}

// AddRecorder registers a recorder.
func (d *driverImpl) AddRecorder(r Recorder) {
	d.recorders = append(d.recorders, r)
}

// Latest returns the last completed step.
func (d *driverImpl) Latest() (int, state.Field) {
	return d.step, d.global.Snapshot(0)
}

// Run runs all the queued stages in the driver.
func (d *driverImpl) Run() error {
	d.TickNow()

	return errors.Join(d.Engine.Run(), d.err)
}
