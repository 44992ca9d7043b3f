package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sweptrule/config"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/state"
	"github.com/sarchlab/sweptrule/stencil"
)

const run = `
name: Heat
radius: 1
tile: [4, 4]
tiles: [2, 1]
variables: 1
pyramid_steps: 2
stencil: average3
memory: host
boundary:
  kind: fixed
  values:
    North: 1
    West: 3
initial:
  kind: constant
  value: 2
`

var _ = Describe("File", func() {
	It("should fill in defaults", func() {
		f, err := config.Parse([]byte("name: Empty\n"))
		Expect(err).NotTo(HaveOccurred())

		cfg := f.Grid()
		Expect(f.Name).To(Equal("Empty"))
		Expect(cfg.TileWidth).To(Equal(8))
		Expect(cfg.TimeLevels).To(Equal(3))
		Expect(cfg.Periodic).To(BeTrue())
		Expect(cfg.Validate()).To(Succeed())
		Expect(f.Stencil).To(Equal("average3"))
	})

	It("should read a run", func() {
		f, err := config.Parse([]byte(run))
		Expect(err).NotTo(HaveOccurred())

		cfg := f.Grid()
		Expect(cfg.TilesX).To(Equal(2))
		Expect(cfg.TilesY).To(Equal(1))
		Expect(cfg.TimeLevels).To(Equal(5))
		Expect(cfg.Periodic).To(BeFalse())
		Expect(f.Memory).To(Equal("host"))

		s, err := f.Stepper()
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(stencil.Average3{}))

		b, err := f.Boundary()
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(state.Fixed{Values: map[grid.Side]float32{
			grid.North: 1,
			grid.West:  3,
		}}))

		first, err := f.Initial()
		Expect(err).NotTo(HaveOccurred())
		Expect(first.W).To(Equal(8))
		Expect(first.H).To(Equal(4))
		Expect(first.Data).To(HaveEach(float32(2)))
	})

	It("should load from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run.yaml")
		Expect(os.WriteFile(path, []byte(run), 0o644)).To(Succeed())

		f, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Name).To(Equal("Heat"))
	})

	It("should reject a malformed tile", func() {
		_, err := config.Parse([]byte("tile: [1, 2, 3]\n"))
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("should reject unknown names",
		func(doc string) {
			f, err := config.Parse([]byte(doc))
			Expect(err).NotTo(HaveOccurred())

			_, err = f.Platform()
			if err == nil {
				_, err = f.Initial()
			}
			Expect(err).To(HaveOccurred())
		},
		Entry("stencil", "stencil: sobel\n"),
		Entry("boundary", "boundary: {kind: reflect}\n"),
		Entry("side", "boundary: {kind: fixed, values: {Up: 1}}\n"),
		Entry("initial", "initial: {kind: sine}\n"),
	)
})

var _ = Describe("PlatformBuilder", func() {
	It("should refuse a fatal configuration", func() {
		f, err := config.Parse([]byte("tile: [2, 2]\npyramid_steps: 2\n"))
		Expect(err).NotTo(HaveOccurred())

		b, err := f.Platform()
		Expect(err).NotTo(HaveOccurred())

		_, err = b.Build("Bad")
		Expect(err).To(HaveOccurred())
	})

	It("should refuse an unknown memory", func() {
		f, err := config.Parse([]byte("memory: tape\n"))
		Expect(err).NotTo(HaveOccurred())

		b, err := f.Platform()
		Expect(err).NotTo(HaveOccurred())

		_, err = b.Build("Bad")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("should run a full cycle",
		func(memory string) {
			f, err := config.Parse([]byte(run))
			Expect(err).NotTo(HaveOccurred())
			f.Memory = memory
			f.BoundaryPolicy = config.Boundary{Kind: "periodic"}

			b, err := f.Platform()
			Expect(err).NotTo(HaveOccurred())

			p, err := b.Build("Platform")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Issues).To(BeEmpty())

			first, err := f.Initial()
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Driver.Seed(first)).To(Succeed())
			p.Driver.Plan(f.Octahedra)
			Expect(p.Driver.Run()).To(Succeed())

			Expect(p.Global.Config.Periodic).To(BeTrue())

			step, last := p.Driver.Latest()
			Expect(step).To(Equal(4))
			Expect(last.Data).To(HaveEach(float32(2)))
		},
		Entry("device", "device"),
		Entry("host", "host"),
	)

	It("should run a fixed boundary on a bounded grid", func() {
		f, err := config.Parse([]byte(run))
		Expect(err).NotTo(HaveOccurred())

		b, err := f.Platform()
		Expect(err).NotTo(HaveOccurred())

		p, err := b.Build("Platform")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Global.Config.Periodic).To(BeFalse())

		first, err := f.Initial()
		Expect(err).NotTo(HaveOccurred())

		Expect(p.Driver.Seed(first)).To(Succeed())
		p.Driver.Plan(f.Octahedra)
		Expect(p.Driver.Run()).To(Succeed())

		step, last := p.Driver.Latest()
		Expect(step).To(Equal(4))
		for _, value := range last.Data {
			Expect(value).To(BeNumerically(">=", 0))
			Expect(value).To(BeNumerically("<=", 3))
		}
	})

	It("should make the grid periodic for a wrapping boundary", func() {
		f, err := config.Parse([]byte(run))
		Expect(err).NotTo(HaveOccurred())

		b, err := f.Platform()
		Expect(err).NotTo(HaveOccurred())

		p, err := b.WithBoundary(state.Periodic{}).Build("Platform")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Global.Config.Periodic).To(BeTrue())
	})
})
