package kernel

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/sweptrule/grid"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintTile dumps every variable plane of a tile, halo included.
func PrintTile(w io.Writer, t *Tile, level int) {
	fmt.Fprintf(w, "==============%s@L%d==============\n", t.ID, level)

	for v := 0; v < t.cfg.NumVars; v++ {
		fmt.Fprintln(w, RenderTile(t, v))
	}

	fmt.Fprintln(w, "================================================")
}

// RenderTile renders one variable plane of a tile as a table, one row per
// x. Halo cells are bracketed.
func RenderTile(t *Tile, v int) string {
	cfg := t.cfg
	interior := cfg.InteriorRegion()

	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Variable %d", v))

	header := table.Row{"x\\y"}
	for j := 0; j < cfg.PaddedH(); j++ {
		header = append(header, j)
	}
	tw.AppendHeader(header)

	for i := 0; i < cfg.PaddedW(); i++ {
		row := table.Row{i}

		for j := 0; j < cfg.PaddedH(); j++ {
			at := grid.Local{X: i, Y: j}
			cell := fmt.Sprintf("%.4g", t.At(at, v))
			if !interior.Contains(at) {
				cell = "[" + cell + "]"
			}
			row = append(row, cell)
		}

		tw.AppendRow(row)
	}

	return tw.Render()
}
