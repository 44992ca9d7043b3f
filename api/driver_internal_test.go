package api

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
)

func constantField(cfg grid.Config, value float32) state.Field {
	f := state.NewField(cfg.TilesX*cfg.TileWidth, cfg.TilesY*cfg.TileHeight, cfg.NumVars)
	f.Fill(func() float32 { return value })

	return f
}

// fillLevel writes one value into every interior cell of a time level.
func fillLevel(g *state.Global, level int, value float32) {
	w, h := g.Config.Extent()

	for v := 0; v < g.Config.NumVars; v++ {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if g.Config.Interior(x, y) {
					g.SetCell(x, y, v, level, value)
				}
			}
		}
	}
}

type launchTrace struct {
	starts []LaunchInfo
}

func (t *launchTrace) Func(ctx sim.HookCtx) {
	if ctx.Pos == HookPosLaunchStart {
		t.starts = append(t.starts, ctx.Item.(LaunchInfo))
	}
}

var _ = Describe("Driver", func() {
	var (
		mockCtrl     *gomock.Controller
		mockLauncher *MockLauncher
		mockRecorder *MockRecorder
		cfg          grid.Config
		global       *state.Global
		driver       *driverImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockLauncher = NewMockLauncher(mockCtrl)
		mockRecorder = NewMockRecorder(mockCtrl)

		cfg = grid.Config{
			Radius:          1,
			TileWidth:       4,
			TileHeight:      4,
			NumVars:         1,
			MaxPyramidSteps: 2,
			TilesX:          1,
			TilesY:          1,
			TimeLevels:      5,
			Periodic:        true,
		}
		global, _ = state.NewGlobal(cfg, state.NewHostMemory(cfg.GlobalLen()))

		driver = &driverImpl{
			cfg:      cfg,
			global:   global,
			launcher: mockLauncher,
			boundary: state.Periodic{},
		}
		driver.TickingComponent =
			sim.NewTickingComponent("Driver", nil, 1*sim.GHz, driver)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should plan a full cycle", func() {
		driver.Plan(2)

		stages := make([]kernel.Stage, 0, len(driver.launchTasks))
		for _, task := range driver.launchTasks {
			stages = append(stages, task.stage)
		}

		Expect(stages).To(Equal([]kernel.Stage{
			kernel.UpPyramid,
			kernel.Bridge,
			kernel.Octahedron,
			kernel.Bridge,
			kernel.Octahedron,
			kernel.Bridge,
			kernel.DownPyramid,
		}))
	})

	It("should record the seed as step 0", func() {
		driver.AddRecorder(mockRecorder)
		mockRecorder.EXPECT().Record(0, constantField(cfg, 2))

		Expect(driver.Seed(constantField(cfg, 2))).To(Succeed())
		Expect(global.Cell(0, 0, 0, 0)).To(Equal(float32(2)))
		Expect(global.Cell(0, 0, 0, 4)).To(Equal(float32(2)))
		Expect(global.Unwritten(0)).To(BeZero())
		Expect(global.Unwritten(1)).To(Equal(16))
		Expect(driver.frame).To(Equal(grid.Aligned))
	})

	It("should not tick without tasks", func() {
		Expect(driver.Tick()).To(BeFalse())
	})

	It("should not record a pyramid that leaves levels open", func() {
		Expect(driver.Seed(constantField(cfg, 2))).To(Succeed())
		driver.AddRecorder(mockRecorder)
		driver.Enqueue(kernel.UpPyramid)
		driver.Enqueue(kernel.Bridge)

		gomock.InOrder(
			mockLauncher.EXPECT().Launch(kernel.UpPyramid, grid.Aligned, 0),
			mockLauncher.EXPECT().Launch(kernel.Bridge, grid.Aligned, 0),
		)

		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.err).NotTo(HaveOccurred())

		step, f := driver.Latest()
		Expect(step).To(Equal(0))
		Expect(f).To(Equal(constantField(cfg, 2)))
	})

	It("should record an octahedron and carry its up half", func() {
		Expect(driver.Seed(constantField(cfg, 1))).To(Succeed())
		driver.step = 2
		driver.AddRecorder(mockRecorder)
		driver.Enqueue(kernel.Octahedron)

		mockLauncher.EXPECT().
			Launch(kernel.Octahedron, grid.Shifted, 0).
			Do(func(kernel.Stage, grid.Frame, int) {
				for level := 1; level <= 4; level++ {
					fillLevel(global, level, float32(10*level))
				}
			})

		gomock.InOrder(
			mockRecorder.EXPECT().Record(3, constantField(cfg, 10)),
			mockRecorder.EXPECT().Record(4, constantField(cfg, 20)),
		)

		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.err).NotTo(HaveOccurred())
		Expect(driver.frame).To(Equal(grid.Shifted))

		step, f := driver.Latest()
		Expect(step).To(Equal(4))
		Expect(f).To(Equal(constantField(cfg, 20)))
		Expect(global.Cell(2, 2, 0, 1)).To(Equal(float32(30)))
		Expect(global.Cell(2, 2, 0, 2)).To(Equal(float32(40)))
		Expect(global.Unwritten(3)).To(Equal(16))
		Expect(global.Unwritten(4)).To(Equal(16))
	})

	It("should stop on a recorder error", func() {
		Expect(driver.Seed(constantField(cfg, 1))).To(Succeed())
		driver.AddRecorder(mockRecorder)
		driver.Plan(1)

		mockLauncher.EXPECT().Launch(gomock.Any(), gomock.Any(), 0).Times(3)
		mockRecorder.EXPECT().
			Record(1, gomock.Any()).
			Return(errors.New("disk full"))

		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.err).NotTo(HaveOccurred())

		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.err).To(MatchError(ContainSubstring("disk full")))
		Expect(driver.Tick()).To(BeFalse())
		Expect(driver.launchTasks).To(HaveLen(2))
	})

	It("should invoke launch hooks with the frame of every stage", func() {
		counter := NewLaunchCounter()
		trace := &launchTrace{}
		driver.AcceptHook(counter)
		driver.AcceptHook(trace)
		driver.AcceptHook(LaunchLogger{})
		driver.Plan(1)

		mockLauncher.EXPECT().Launch(gomock.Any(), gomock.Any(), 0).Times(5)

		for driver.Tick() {
		}

		Expect(counter.Counts).To(Equal(map[kernel.Stage]int{
			kernel.UpPyramid:   1,
			kernel.Bridge:      2,
			kernel.Octahedron:  1,
			kernel.DownPyramid: 1,
		}))
		Expect(trace.starts).To(Equal([]LaunchInfo{
			{Stage: kernel.UpPyramid, Frame: grid.Aligned, Step: 0},
			{Stage: kernel.Bridge, Frame: grid.Aligned, Step: 0},
			{Stage: kernel.Octahedron, Frame: grid.Shifted, Step: 0},
			{Stage: kernel.Bridge, Frame: grid.Shifted, Step: 2},
			{Stage: kernel.DownPyramid, Frame: grid.Aligned, Step: 2},
		}))
	})

	It("should run the queue on the engine", func() {
		engine := sim.NewSerialEngine()
		d := DriverBuilder{}.
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithGlobal(global).
			WithLauncher(mockLauncher).
			Build("Driver")

		Expect(d.Seed(constantField(cfg, 3))).To(Succeed())
		d.Plan(1)

		fill := func(top int) func(kernel.Stage, grid.Frame, int) {
			return func(kernel.Stage, grid.Frame, int) {
				for level := 1; level <= top; level++ {
					fillLevel(global, level, 3)
				}
			}
		}

		gomock.InOrder(
			mockLauncher.EXPECT().Launch(kernel.UpPyramid, grid.Aligned, 0),
			mockLauncher.EXPECT().Launch(kernel.Bridge, grid.Aligned, 0),
			mockLauncher.EXPECT().Launch(kernel.Octahedron, grid.Shifted, 0).Do(fill(4)),
			mockLauncher.EXPECT().Launch(kernel.Bridge, grid.Shifted, 0),
			mockLauncher.EXPECT().Launch(kernel.DownPyramid, grid.Aligned, 0).Do(fill(2)),
		)

		Expect(d.Run()).To(Succeed())

		step, f := d.Latest()
		Expect(step).To(Equal(2 * 2))
		Expect(f).To(Equal(constantField(cfg, 3)))
	})

	Context("when building", func() {
		It("should default the boundary to the grid", func() {
			d := DriverBuilder{}.
				WithFreq(1 * sim.GHz).
				WithGlobal(global).
				WithLauncher(mockLauncher).
				Build("Driver").(*driverImpl)

			Expect(d.boundary).To(Equal(state.Periodic{}))
		})

		It("should reject a boundary that does not match the grid", func() {
			Expect(func() {
				DriverBuilder{}.
					WithFreq(1 * sim.GHz).
					WithGlobal(global).
					WithLauncher(mockLauncher).
					WithBoundary(state.Fixed{}).
					Build("Driver")
			}).To(Panic())
		})
	})
})
