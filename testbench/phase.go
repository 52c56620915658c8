package testbench

import "github.com/sarchlab/dpram/rtl"

// A Phase is a fixed-length generator of steps.
type Phase interface {
	Name() string
	Len() int
	Step(i int) Step
}

// ResetPhase holds reset for a number of clock pulses, then releases it with
// the clock low and settles the model.
type ResetPhase struct {
	Cycles int
}

// Name returns "reset".
func (p ResetPhase) Name() string {
	return "reset"
}

// Len counts the reset pulses plus the release step.
func (p ResetPhase) Len() int {
	return p.Cycles + 1
}

// Step returns the i-th step.
func (p ResetPhase) Step(i int) Step {
	mustBeInPhase(p, i)

	if i < p.Cycles {
		return Step{Cycles: []Cycle{{
			Inputs: []Assignment{{Signal: rtl.Reset, Value: 1}},
			Pulse:  true,
		}}}
	}

	return Step{Cycles: []Cycle{{
		Inputs: []Assignment{
			{Signal: rtl.Clk, Value: 0},
			{Signal: rtl.Reset, Value: 0},
		},
	}}}
}

// ReadOnlyPhase reads consecutive words through port A and probes rdtAo after
// each read.
type ReadOnlyPhase struct {
	Base   uint32
	Stride uint32
	Count  int
}

// Name returns "read-only".
func (p ReadOnlyPhase) Name() string {
	return "read-only"
}

// Len returns the number of reads.
func (p ReadOnlyPhase) Len() int {
	return p.Count
}

// Address returns the address read by step i.
func (p ReadOnlyPhase) Address(i int) uint32 {
	return p.Base + uint32(i)*p.Stride
}

// Step returns the i-th step.
func (p ReadOnlyPhase) Step(i int) Step {
	mustBeInPhase(p, i)

	return Step{
		Cycles: []Cycle{{
			Inputs: []Assignment{
				{Signal: rtl.ReA, Value: 1},
				{Signal: rtl.AddrA, Value: p.Address(i)},
			},
			Pulse: true,
		}},
		Probe: &Probe{Label: "rdtA", Index: i, Signal: rtl.RdtAo},
	}
}

// ReadWritePhase writes the step index through port B and reads it back on
// the following clock, probing rdtBo.
type ReadWritePhase struct {
	Base   uint32
	Stride uint32
	Count  int
	Size   rtl.AccessSize
}

// Name returns "read-write".
func (p ReadWritePhase) Name() string {
	return "read-write"
}

// Len returns the number of write/read pairs.
func (p ReadWritePhase) Len() int {
	return p.Count
}

// Address returns the address written and read by step i.
func (p ReadWritePhase) Address(i int) uint32 {
	return p.Base + uint32(i)*p.Stride
}

// Step returns the i-th step.
func (p ReadWritePhase) Step(i int) Step {
	mustBeInPhase(p, i)

	return Step{
		Cycles: []Cycle{
			{
				Inputs: []Assignment{
					{Signal: rtl.WeB, Value: 1},
					{Signal: rtl.AddrB, Value: p.Address(i)},
					{Signal: rtl.SizeB, Value: uint32(p.Size)},
					{Signal: rtl.WdtB, Value: uint32(i)},
				},
				Pulse: true,
			},
			{
				Inputs: []Assignment{
					{Signal: rtl.WeB, Value: 0},
					{Signal: rtl.ReB, Value: 1},
				},
				Pulse: true,
			},
		},
		Probe: &Probe{Label: "rdtB", Index: i, Signal: rtl.RdtBo},
	}
}

func mustBeInPhase(p Phase, i int) {
	if i < 0 || i >= p.Len() {
		panic("step out of phase range")
	}
}
