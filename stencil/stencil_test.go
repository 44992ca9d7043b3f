package stencil_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/stencil"
)

var _ = Describe("Stencils", func() {
	var (
		cfg  grid.Config
		tile *kernel.Tile
		out  []float32
		at   grid.Local
	)

	fill := func(value float32) {
		for x := 0; x < cfg.PaddedW(); x++ {
			for y := 0; y < cfg.PaddedH(); y++ {
				tile.Set(grid.Local{X: x, Y: y}, 0, value)
			}
		}
	}

	BeforeEach(func() {
		cfg = grid.Config{
			Radius:     1,
			TileWidth:  4,
			TileHeight: 4,
			NumVars:    1,
			DX:         0.5,
			DY:         0.5,
			DT:         0.01,
		}
		tile = kernel.NewTile(cfg, grid.TileID{})
		out = make([]float32, 1)
		at = grid.Local{X: 2, Y: 2}
	})

	It("should copy with the identity", func() {
		tile.Set(at, 0, 3.5)
		stencil.Identity{}.Step(tile, at, out)
		Expect(out[0]).To(Equal(float32(3.5)))
	})

	It("should average along y", func() {
		tile.Set(grid.Local{X: 2, Y: 1}, 0, 1)
		tile.Set(at, 0, 2)
		tile.Set(grid.Local{X: 2, Y: 3}, 0, 3)
		tile.Set(grid.Local{X: 1, Y: 2}, 0, 100)

		stencil.Average3{}.Step(tile, at, out)
		Expect(out[0]).To(Equal(float32(2)))
	})

	It("should keep a constant field under averaging", func() {
		fill(1)
		stencil.Average3{}.Step(tile, at, out)
		Expect(out[0]).To(Equal(float32(1)))
	})

	It("should keep a constant field under heat", func() {
		fill(5)
		stencil.Heat{Alpha: 1}.Step(tile, at, out)
		Expect(out[0]).To(Equal(float32(5)))
	})

	It("should diffuse a spike", func() {
		tile.Set(at, 0, 1)
		stencil.Heat{Alpha: 1}.Step(tile, at, out)
		Expect(out[0]).To(BeNumerically("~", 1-4*0.04, 1e-6))

		stencil.Heat{Alpha: 1}.Step(tile, grid.Local{X: 3, Y: 2}, out)
		Expect(out[0]).To(BeNumerically("~", 0.04, 1e-6))
	})

	It("should read the diagonal in a box", func() {
		tile.Set(grid.Local{X: 1, Y: 1}, 0, 9)
		stencil.Box{R: 1}.Step(tile, at, out)
		Expect(out[0]).To(Equal(float32(1)))
	})

	It("should resolve stencils by name", func() {
		s, err := stencil.ByName("box", 2, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Radius()).To(Equal(2))

		s, err = stencil.ByName("heat", 1, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(stencil.Heat{Alpha: 0.5}))

		_, err = stencil.ByName("wave", 1, 0)
		Expect(err).To(HaveOccurred())
	})
})
