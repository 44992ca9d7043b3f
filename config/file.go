package config

import (
	"fmt"
	"os"

	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
	"github.com/sarchlab/sweptrule/stencil"
	valgen "github.com/sarchlab/sweptrule/util"
	"gopkg.in/yaml.v3"
)

// File describes a run.
type File struct {
	Name           string   `yaml:"name"`
	Radius         int      `yaml:"radius"`
	Tile           [2]int   `yaml:"tile"`
	Tiles          [2]int   `yaml:"tiles"`
	Variables      int      `yaml:"variables"`
	PyramidSteps   int      `yaml:"pyramid_steps"`
	TimeLevels     int      `yaml:"time_levels"`
	DX             float32  `yaml:"dx"`
	DY             float32  `yaml:"dy"`
	DT             float32  `yaml:"dt"`
	Split          [2]int   `yaml:"split"`
	Octahedra      int      `yaml:"octahedra"`
	Stencil        string   `yaml:"stencil"`
	Alpha          float32  `yaml:"alpha"`
	Memory         string   `yaml:"memory"`
	BoundaryPolicy Boundary `yaml:"boundary"`
	InitialField   Initial  `yaml:"initial"`
	Recorder       Recorder `yaml:"recorder"`
}

// Boundary selects the ghost-cell policy. Values maps side names to the
// constants of a fixed boundary.
type Boundary struct {
	Kind   string             `yaml:"kind"`
	Values map[string]float32 `yaml:"values"`
}

// Initial selects how the interior of the first field is filled.
type Initial struct {
	Kind  string  `yaml:"kind"`
	Value float32 `yaml:"value"`
	Step  float32 `yaml:"step"`
	Seed  int64   `yaml:"seed"`
}

// Recorder selects a result database. An empty driver records nothing.
type Recorder struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Load reads a run file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a run file. Unset fields take the defaults of a one-tile
// periodic average3 run.
func Parse(data []byte) (*File, error) {
	f := &File{
		Name:         "Sweep",
		Radius:       1,
		Variables:    1,
		PyramidSteps: 1,
		Tile:         [2]int{8, 8},
		Tiles:        [2]int{1, 1},
		Octahedra:    1,
		Stencil:      "average3",
		Memory:       "device",
		DX:           1,
		DY:           1,
		DT:           0.1,
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}

	if f.TimeLevels == 0 {
		f.TimeLevels = 2*f.PyramidSteps + 1
	}

	return f, nil
}

// Grid returns the grid configuration of the run. The grid is periodic
// unless the run asks for another boundary.
func (f *File) Grid() grid.Config {
	return grid.Config{
		Radius:          f.Radius,
		TileWidth:       f.Tile[0],
		TileHeight:      f.Tile[1],
		NumVars:         f.Variables,
		MaxPyramidSteps: f.PyramidSteps,
		TilesX:          f.Tiles[0],
		TilesY:          f.Tiles[1],
		TimeLevels:      f.TimeLevels,
		DX:              f.DX,
		DY:              f.DY,
		DT:              f.DT,
		SplitX:          f.Split[0],
		SplitY:          f.Split[1],
		Periodic:        f.periodic(),
	}
}

func (f *File) periodic() bool {
	kind := f.BoundaryPolicy.Kind
	return kind == "" || kind == "periodic"
}

// Stepper returns the stencil of the run.
func (f *File) Stepper() (kernel.Stencil, error) {
	return stencil.ByName(f.Stencil, f.Radius, f.Alpha)
}

// Boundary returns the ghost-cell policy of the run.
func (f *File) Boundary() (state.Boundary, error) {
	switch f.BoundaryPolicy.Kind {
	case "", "periodic":
		return state.Periodic{}, nil
	case "fixed":
		values := make(map[grid.Side]float32)
		for name, value := range f.BoundaryPolicy.Values {
			side, ok := grid.SideByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown side %q", name)
			}
			values[side] = value
		}

		return state.Fixed{Values: values}, nil
	default:
		return nil, fmt.Errorf("unknown boundary %q", f.BoundaryPolicy.Kind)
	}
}

// Initial returns the first interior field of the run.
func (f *File) Initial() (state.Field, error) {
	cfg := f.Grid()
	field := state.NewField(cfg.TilesX*cfg.TileWidth, cfg.TilesY*cfg.TileHeight, cfg.NumVars)

	ic := f.InitialField
	gen, ok := valgen.MakeGen(ic.Kind, ic.Value, ic.Step, ic.Seed)
	if !ok {
		return field, fmt.Errorf("unknown initial condition %q", ic.Kind)
	}

	field.Fill(gen)

	return field, nil
}

// Platform returns a platform builder set up for the run.
func (f *File) Platform() (PlatformBuilder, error) {
	stepper, err := f.Stepper()
	if err != nil {
		return PlatformBuilder{}, err
	}

	boundary, err := f.Boundary()
	if err != nil {
		return PlatformBuilder{}, err
	}

	return MakePlatformBuilder().
		WithConfig(f.Grid()).
		WithStepper(stepper).
		WithBoundary(boundary).
		WithMemory(f.Memory), nil
}
