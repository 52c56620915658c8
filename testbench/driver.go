package testbench

import (
	"github.com/golang/glog"
	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/timing"
)

// HookPosPhaseStart marks the first tick of a phase. The hook item is a
// PhaseInfo.
var HookPosPhaseStart = &hooking.HookPos{Name: "PhaseStart"}

// HookPosPhaseEnd marks that all steps of a phase have been applied. The hook
// item is a PhaseInfo.
var HookPosPhaseEnd = &hooking.HookPos{Name: "PhaseEnd"}

// HookPosStepDone marks the completion of a step. The hook item is a
// StepRecord.
var HookPosStepDone = &hooking.HookPos{Name: "StepDone"}

// PhaseInfo describes a phase at its start or end.
type PhaseInfo struct {
	Name  string
	Steps int
}

// StepRecord is the outcome of one step. Label is empty and Value is zero for
// steps without a probe.
type StepRecord struct {
	Phase string
	Index int
	Label string
	Value uint32
	Time  timing.VTimeInSec
}

// ProgressReporter receives the number of finished steps of a phase.
type ProgressReporter interface {
	IncrementFinished(amount uint64)
}

// A ProgressTracker creates one ProgressReporter per phase.
type ProgressTracker interface {
	StartPhase(name string, steps int) ProgressReporter
	FinishPhase(r ProgressReporter)
}

// Driver applies phases of stimulus to a model, one cycle per tick.
type Driver struct {
	*timing.TickingComponent

	model    rtl.Model
	reporter *Reporter
	phases   []Phase
	progress ProgressTracker

	phaseIdx int
	stepIdx  int
	cycleIdx int
	started  bool
	current  ProgressReporter

	pulses uint64
}

// Model returns the driven model.
func (d *Driver) Model() rtl.Model {
	return d.model
}

// Reporter returns the reporter that prints probed values.
func (d *Driver) Reporter() *Reporter {
	return d.reporter
}

// Cycles returns the number of clock pulses applied so far.
func (d *Driver) Cycles() uint64 {
	return d.pulses
}

// Done tells if all phases have been applied.
func (d *Driver) Done() bool {
	return d.phaseIdx >= len(d.phases)
}

// Initialize drives the clock low and asserts reset.
func (d *Driver) Initialize() {
	d.model.SetInput(rtl.Clk, 0)
	d.model.SetInput(rtl.Reset, 1)
}

// Run initializes the model, applies all phases and returns the first engine
// or output error.
func (d *Driver) Run() error {
	d.Initialize()
	d.TickNow()

	err := d.Engine.Run()
	if err != nil {
		return err
	}

	return d.reporter.Err()
}

// Tick applies the next cycle. It returns false once every phase is done.
func (d *Driver) Tick() bool {
	d.skipFinishedPhases()

	if d.Done() {
		return false
	}

	phase := d.phases[d.phaseIdx]
	if !d.started {
		d.startPhase(phase)
	}

	step := phase.Step(d.stepIdx)
	if d.cycleIdx < len(step.Cycles) {
		d.apply(step.Cycles[d.cycleIdx])
		d.cycleIdx++
	}

	if d.cycleIdx >= len(step.Cycles) {
		d.completeStep(phase, step)
	}

	return true
}

func (d *Driver) skipFinishedPhases() {
	for !d.Done() && d.stepIdx >= d.phases[d.phaseIdx].Len() {
		d.finishPhase(d.phases[d.phaseIdx])
	}
}

func (d *Driver) apply(c Cycle) {
	c.Apply(d.model)

	if c.Pulse {
		d.pulses++
	}
}

func (d *Driver) startPhase(phase Phase) {
	d.started = true

	glog.V(1).Infof("%s: phase %s started, %d steps",
		d.Name(), phase.Name(), phase.Len())

	if d.progress != nil {
		d.current = d.progress.StartPhase(phase.Name(), phase.Len())
	}

	d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosPhaseStart,
		Item:   PhaseInfo{Name: phase.Name(), Steps: phase.Len()},
	})
}

func (d *Driver) finishPhase(phase Phase) {
	if d.started {
		glog.V(1).Infof("%s: phase %s finished after %d pulses",
			d.Name(), phase.Name(), d.pulses)

		if d.progress != nil {
			d.progress.FinishPhase(d.current)
		}

		d.InvokeHook(hooking.HookCtx{
			Domain: d,
			Pos:    HookPosPhaseEnd,
			Item:   PhaseInfo{Name: phase.Name(), Steps: phase.Len()},
		})
	}

	d.phaseIdx++
	d.stepIdx = 0
	d.cycleIdx = 0
	d.started = false
	d.current = nil
}

func (d *Driver) completeStep(phase Phase, step Step) {
	record := StepRecord{
		Phase: phase.Name(),
		Index: d.stepIdx,
		Time:  d.Now(),
	}

	if step.Probe != nil {
		record.Label = step.Probe.Label
		record.Index = step.Probe.Index
		record.Value = d.model.Output(step.Probe.Signal)
		d.reporter.Report(record.Label, record.Index, record.Value)
	}

	if d.current != nil {
		d.current.IncrementFinished(1)
	}

	d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosStepDone,
		Item:   record,
	})

	d.stepIdx++
	d.cycleIdx = 0
}
