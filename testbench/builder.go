package testbench

import (
	"io"
	"os"

	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/sim/timing"
)

// Builder can build drivers.
type Builder struct {
	engine   timing.Engine
	freq     timing.Freq
	output   io.Writer
	phases   []Phase
	progress ProgressTracker
}

// MakeBuilder creates a builder with the default configuration. Output goes to
// stdout.
func MakeBuilder() Builder {
	cfg := DefaultConfig()

	return Builder{
		freq:   cfg.Freq,
		output: os.Stdout,
		phases: Phases(cfg),
	}
}

// WithEngine sets the engine that schedules the driver's ticks.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the driver.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithOutput sets where probed values are printed.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.output = w
	return b
}

// WithPhases replaces the phases to apply.
func (b Builder) WithPhases(phases ...Phase) Builder {
	b.phases = phases
	return b
}

// WithConfig sets the phases and frequency from a run configuration.
func (b Builder) WithConfig(cfg Config) Builder {
	b.phases = Phases(cfg)
	b.freq = cfg.Freq

	return b
}

// WithProgressTracker reports phase progress to t.
func (b Builder) WithProgressTracker(t ProgressTracker) Builder {
	b.progress = t
	return b
}

// Build creates a driver for the given model. Without an engine, the driver
// runs on a new serial engine.
func (b Builder) Build(name string, model rtl.Model) *Driver {
	if model == nil {
		panic("driver requires a model")
	}

	engine := b.engine
	if engine == nil {
		engine = timing.NewSerialEngine()
	}

	d := &Driver{
		model:    model,
		reporter: NewReporter(b.output),
		phases:   b.phases,
		progress: b.progress,
	}
	d.TickingComponent = timing.NewTickingComponent(name, engine, b.freq, d)

	return d
}
