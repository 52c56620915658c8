package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/browser"
	"github.com/sarchlab/dpram/datarecording"
	"github.com/sarchlab/dpram/mem/dpram"
	"github.com/sarchlab/dpram/mem/storage"
	"github.com/sarchlab/dpram/mem/trace"
	"github.com/sarchlab/dpram/monitoring"
	"github.com/sarchlab/dpram/sim/timing"
	"github.com/sarchlab/dpram/testbench"
	"github.com/spf13/pflag"
)

type runOptions struct {
	resetCycles int
	steps       int
	freqMHz     float64
	capacity    uint64
	elfPath     string
	traceDB     string
	traceLog    string
	golden      string
	monitor     bool
	monitorPort int
	openBrowser bool
	eventLog    bool
}

func defaultRunOptions() *runOptions {
	cfg := testbench.DefaultConfig()

	return &runOptions{
		resetCycles: cfg.ResetCycles,
		steps:       cfg.Steps,
		freqMHz:     float64(cfg.Freq / timing.MHz),
		capacity:    4 * storage.GB,
	}
}

func (o *runOptions) bindFlags(flags *pflag.FlagSet) {
	flags.IntVar(&o.resetCycles, "reset-cycles", o.resetCycles,
		"Number of clock pulses with reset asserted.")
	flags.IntVar(&o.steps, "steps", o.steps,
		"Number of accesses in each sweep.")
	flags.Float64Var(&o.freqMHz, "freq-mhz", o.freqMHz,
		"Clock frequency of the driver in MHz.")
	flags.Uint64Var(&o.capacity, "capacity", o.capacity,
		"Capacity of the RAM in bytes.")
	flags.StringVar(&o.elfPath, "elf", o.elfPath,
		"ELF executable to load into the RAM before the run.")
	flags.StringVar(&o.traceDB, "trace-db", o.traceDB,
		"Record memory accesses and step results into <name>.sqlite3.")
	flags.StringVar(&o.traceLog, "trace-log", o.traceLog,
		"Write one line per memory access into this file.")
	flags.StringVar(&o.golden, "golden", o.golden,
		"Compare the printed lines with this file and fail on a mismatch.")
	flags.BoolVar(&o.monitor, "monitor", o.monitor,
		"Serve the monitoring API while running.")
	flags.IntVar(&o.monitorPort, "monitor-port", o.monitorPort,
		"Port of the monitoring API. 0 picks a random port.")
	flags.BoolVar(&o.openBrowser, "open-browser", o.openBrowser,
		"Open the monitoring API in a browser.")
	flags.BoolVar(&o.eventLog, "event-log", o.eventLog,
		"Log every simulation event to stderr.")
}

func (o *runOptions) config() testbench.Config {
	cfg := testbench.DefaultConfig()
	cfg.ResetCycles = o.resetCycles
	cfg.Steps = o.steps
	cfg.Freq = timing.Freq(o.freqMHz) * timing.MHz

	return cfg
}

// progressBars shows phase progress on the monitor.
type progressBars struct {
	monitor *monitoring.Monitor
}

func (p progressBars) StartPhase(
	name string,
	steps int,
) testbench.ProgressReporter {
	return p.monitor.CreateProgressBar(name, uint64(steps))
}

func (p progressBars) FinishPhase(r testbench.ProgressReporter) {
	p.monitor.CompleteProgressBar(r.(*monitoring.ProgressBar))
}

func run(stdout io.Writer, o *runOptions, args []string) error {
	cfg := o.config()

	err := cfg.Validate()
	if err != nil {
		return err
	}

	engine := timing.NewSerialEngine()
	if o.eventLog {
		engine.AcceptHook(timing.NewEventLogger(log.New(os.Stderr, "", 0)))
	}

	ram := dpram.MakeBuilder().
		WithCapacity(o.capacity).
		Build("RAM")

	if o.elfPath != "" {
		_, err = ram.LoadELF(o.elfPath)
		if err != nil {
			return err
		}
	}

	err = ram.CommandArgs(args)
	if err != nil {
		return err
	}

	runLog := new(bytes.Buffer)
	out := stdout

	if o.golden != "" {
		out = io.MultiWriter(stdout, runLog)
	}

	builder := testbench.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithOutput(out)

	var monitor *monitoring.Monitor
	if o.monitor {
		monitor = monitoring.NewMonitor().WithPortNumber(o.monitorPort)
		monitor.RegisterEngine(engine)
		builder = builder.WithProgressTracker(progressBars{monitor: monitor})
	}

	driver := builder.Build("Driver", ram)

	if monitor != nil {
		monitor.RegisterComponent(driver)
		monitor.RegisterComponent(ram)

		err = startMonitor(monitor, o.openBrowser)
		if err != nil {
			return err
		}
	}

	closeTracers, err := attachTracers(o, engine, ram, driver)
	if err != nil {
		return err
	}
	defer closeTracers()

	err = driver.Run()
	if err != nil {
		return err
	}

	glog.V(1).Infof("run finished at %.10f after %d clock pulses",
		engine.Now(), driver.Cycles())

	if o.golden != "" {
		return compareWithGolden(o.golden, runLog)
	}

	return nil
}

func startMonitor(monitor *monitoring.Monitor, openBrowser bool) error {
	url, err := monitor.StartServer()
	if err != nil {
		return err
	}

	if openBrowser {
		err = browser.OpenURL(url)
		if err != nil {
			glog.Warningf("opening %s: %v", url, err)
		}
	}

	return nil
}

func attachTracers(
	o *runOptions,
	engine timing.Engine,
	ram *dpram.Comp,
	driver *testbench.Driver,
) (func(), error) {
	var closers []func()

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if o.traceLog != "" {
		f, err := os.Create(o.traceLog)
		if err != nil {
			return closeAll, fmt.Errorf("creating trace log: %w", err)
		}

		closers = append(closers, func() { f.Close() })
		ram.AcceptHook(trace.NewLogTracer(log.New(f, "", 0), engine))
	}

	if o.traceDB != "" {
		recorder := datarecording.New(o.traceDB)

		closers = append(closers, func() {
			err := recorder.Close()
			if err != nil {
				glog.Errorf("closing %s: %v", o.traceDB, err)
			}
		})
		ram.AcceptHook(trace.NewDBTracer(recorder, engine))
		driver.AcceptHook(testbench.NewStepRecorder(recorder))
	}

	return closeAll, nil
}

func compareWithGolden(path string, runLog io.Reader) error {
	golden, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening golden log: %w", err)
	}
	defer golden.Close()

	err = testbench.CompareGolden(golden, runLog)
	if err != nil {
		return fmt.Errorf("output differs from %s: %w", path, err)
	}

	return nil
}
