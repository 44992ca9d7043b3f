// Command sweep runs a swept-rule stencil simulation described by a run
// file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sweptrule/config"
	"github.com/sarchlab/sweptrule/kernel"
	"github.com/sarchlab/sweptrule/record"
	"github.com/sarchlab/sweptrule/state"
	"github.com/sarchlab/sweptrule/verify"
	"github.com/tebeka/atexit"
)

var (
	configFlag  = flag.String("config", "", "run file to load")
	levelFlag   = flag.String("log-level", "trace", "debug, trace, info, warn or error")
	printFlag   = flag.Bool("print", false, "dump every tile after each local step")
	verifyFlag  = flag.Bool("verify", false, "cross check the kernel against the functional simulator first")
	monitorFlag = flag.Bool("monitor", false, "serve the akita monitor while running")
)

func logLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "trace":
		return kernel.LevelTrace, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func main() {
	flag.Parse()

	level, err := logLevel(*levelFlag)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout,
		&slog.HandlerOptions{Level: level})))

	if *configFlag == "" {
		atexit.Fatalf("no run file, use -config")
	}

	file, err := config.Load(*configFlag)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	initial, err := file.Initial()
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	builder, err := file.Platform()
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	if *verifyFlag {
		checkRun(file, initial)
	}

	engine := sim.NewSerialEngine()
	platform, err := builder.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithPrint(*printFlag).
		Build(file.Name)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	if len(platform.Issues) > 0 {
		fmt.Println(verify.IssueTable(platform.Issues))
	}

	if *monitorFlag {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(platform.Driver)
		monitor.StartServer()
	}

	memory := record.NewMemory()
	platform.Driver.AddRecorder(memory)

	if file.Recorder.Driver != "" {
		db, err := record.OpenSQL(file.Recorder.Driver, file.Recorder.DSN,
			file.Name, file.Grid())
		if err != nil {
			atexit.Fatalf("%v", err)
		}

		atexit.Register(func() { db.Close() })
		platform.Driver.AddRecorder(db)
		slog.Info("Recording", "Driver", file.Recorder.Driver, "Run", db.RunID())
	}

	if err := platform.Driver.Seed(initial); err != nil {
		atexit.Fatalf("%v", err)
	}

	platform.Driver.Plan(file.Octahedra)

	if err := platform.Driver.Run(); err != nil {
		atexit.Fatalf("%v", err)
	}

	step, last := platform.Driver.Latest()

	fmt.Println(record.Summary(memory))
	for v := 0; v < last.NumVars; v++ {
		fmt.Println(record.RenderPlane(
			fmt.Sprintf("Step %d, variable %d", step, v), last, v))
	}

	atexit.Exit(0)
}

// checkRun prints a verification report for the run and stops on failure.
func checkRun(file *config.File, initial state.Field) {
	stepper, err := file.Stepper()
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	boundary, err := file.Boundary()
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	report := verify.GenerateReport(file.Grid(), stepper, boundary, initial)
	report.WriteReport(os.Stdout)

	name := fmt.Sprintf("%s_%s_report.txt", file.Name, xid.New().String())
	if err := report.SaveReportToFile(name); err != nil {
		slog.Warn("Report not saved", "File", name, "Error", err)
	}

	if !report.CrossCheckOK {
		atexit.Fatalf("verification failed")
	}
}
