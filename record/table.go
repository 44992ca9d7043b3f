package record

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/sweptrule/state"
)

// RenderPlane renders one variable of a field as a table with one row per
// x.
func RenderPlane(title string, f state.Field, v int) string {
	tw := table.NewWriter()
	tw.SetTitle(title)

	header := table.Row{"x\\y"}
	for y := 0; y < f.H; y++ {
		header = append(header, y)
	}
	tw.AppendHeader(header)

	for x, cells := range f.Plane(v) {
		row := table.Row{x}
		for _, c := range cells {
			row = append(row, fmt.Sprintf("%.6g", c))
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}

// Summary renders the minimum, maximum and mean of every variable of the
// recorded steps.
func Summary(m *Memory) string {
	tw := table.NewWriter()
	tw.SetTitle("Recorded Steps")
	tw.AppendHeader(table.Row{"Step", "Variable", "Min", "Max", "Mean"})

	for _, step := range m.Steps() {
		f, _ := m.Step(step)

		for v := 0; v < f.NumVars; v++ {
			lo, hi, mean := stats(f, v)
			tw.AppendRow(table.Row{step, v,
				fmt.Sprintf("%.6g", lo),
				fmt.Sprintf("%.6g", hi),
				fmt.Sprintf("%.6g", mean),
			})
		}
	}

	return tw.Render()
}

func stats(f state.Field, v int) (lo, hi, mean float32) {
	n := f.W * f.H
	if n == 0 {
		return 0, 0, 0
	}

	plane := f.Data[v*n : (v+1)*n]
	lo, hi = plane[0], plane[0]

	var sum float64
	for _, c := range plane {
		lo = min(lo, c)
		hi = max(hi, c)
		sum += float64(c)
	}

	return lo, hi, float32(sum / float64(n))
}
