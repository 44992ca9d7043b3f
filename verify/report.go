package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/state"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Config         grid.Config
	LintIssues     []Issue
	LayoutIssues   []Issue
	ScheduleIssues []Issue
	CrossCheckErr  error
	CrossCheckOK   bool
	CrossCheckRan  bool
}

// GenerateReport runs lint and, unless lint found a fatal issue, the cross
// check against the functional simulator.
func GenerateReport(
	cfg grid.Config,
	stepper kernel.Stepper,
	boundary state.Boundary,
	init state.Field,
) *VerificationReport {
	report := &VerificationReport{Config: cfg}

	report.LintIssues = RunLint(cfg, stepper)

	for _, issue := range report.LintIssues {
		if issue.Type == IssueLayout {
			report.LayoutIssues = append(report.LayoutIssues, issue)
		} else {
			report.ScheduleIssues = append(report.ScheduleIssues, issue)
		}
	}

	if HasFatal(report.LintIssues) {
		return report
	}

	report.CrossCheckRan = true
	report.CrossCheckErr = CrossCheck(cfg, stepper, boundary, init)
	report.CrossCheckOK = report.CrossCheckErr == nil

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "SWEPT RULE VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintln(w, ConfigTable(r.Config))

	fmt.Fprintln(w, "\nSTAGE 1: STATIC LINT CHECKS")
	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintln(w, IssueTable(r.LintIssues))
	}

	fmt.Fprintln(w, "\nSTAGE 2: CROSS CHECK")
	switch {
	case !r.CrossCheckRan:
		fmt.Fprintln(w, "Skipped: lint found fatal issues")
	case r.CrossCheckOK:
		fmt.Fprintln(w, "Kernel matches the functional simulator on every stage")
	default:
		fmt.Fprintf(w, "Mismatch: %v\n", r.CrossCheckErr)
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintf(w, "Lint Result: %d issues detected (%d LAYOUT, %d SCHEDULE)\n",
		len(r.LintIssues), len(r.LayoutIssues), len(r.ScheduleIssues))
	fmt.Fprintln(w, separator)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}

// ConfigTable renders the geometry of a run.
func ConfigTable(cfg grid.Config) string {
	tw := table.NewWriter()
	tw.SetTitle("Grid")
	tw.AppendHeader(table.Row{"Parameter", "Value"})

	w, h := cfg.Extent()
	sx, sy := cfg.Split()

	tw.AppendRows([]table.Row{
		{"Radius", cfg.Radius},
		{"Tile", fmt.Sprintf("%dx%d", cfg.TileWidth, cfg.TileHeight)},
		{"Tiles", fmt.Sprintf("%dx%d", cfg.TilesX, cfg.TilesY)},
		{"Padded extent", fmt.Sprintf("%dx%d", w, h)},
		{"Variables", cfg.NumVars},
		{"Pyramid steps", cfg.MaxPyramidSteps},
		{"Time levels", cfg.TimeLevels},
		{"Split", fmt.Sprintf("(%d, %d)", sx, sy)},
		{"Periodic", cfg.Periodic},
	})

	return tw.Render()
}

// IssueTable renders lint issues.
func IssueTable(issues []Issue) string {
	tw := table.NewWriter()
	tw.SetTitle("Lint Issues")
	tw.AppendHeader(table.Row{"#", "Type", "Fatal", "Message"})

	for i, issue := range issues {
		tw.AppendRow(table.Row{i + 1, issue.Type, issue.Fatal, issue.Message})
	}

	return tw.Render()
}
