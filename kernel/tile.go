package kernel

import "github.com/sarchlab/sweptrule/grid"

// Tile is the scratch buffer of one tile-processing group. It holds a
// halo-padded copy of every variable and lives for one launch.
type Tile struct {
	ID   grid.TileID
	cfg  grid.Config
	data []float32
}

// NewTile allocates a zeroed tile buffer.
func NewTile(cfg grid.Config, id grid.TileID) *Tile {
	return &Tile{
		ID:   id,
		cfg:  cfg,
		data: make([]float32, cfg.TileLen()),
	}
}

// Config returns the configuration the tile was built with.
func (t *Tile) Config() grid.Config {
	return t.cfg
}

// At returns variable v at a padded tile coordinate.
func (t *Tile) At(at grid.Local, v int) float32 {
	return t.data[t.cfg.TileOffset(at, v)]
}

// Set assigns variable v at a padded tile coordinate.
func (t *Tile) Set(at grid.Local, v int, value float32) {
	t.data[t.cfg.TileOffset(at, v)] = value
}
