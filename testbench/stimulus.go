// Package testbench drives a cycle-evaluated model through phases of
// stimulus and reports what the model answers.
//
// A Phase generates Steps. A Step is one or more clock Cycles, each assigning
// inputs and then either pulsing the clock or settling the model, optionally
// followed by a Probe that reads an output and reports it as label[index].
// Generating stimulus is kept apart from applying it, so a phase can be
// checked without any model.
package testbench

import "github.com/sarchlab/dpram/rtl"

// An Assignment sets one input signal.
type Assignment struct {
	Signal string
	Value  uint32
}

// A Cycle assigns inputs and then pulses the clock. When Pulse is false the
// model is evaluated once without a clock edge.
type Cycle struct {
	Inputs []Assignment
	Pulse  bool
}

// A Probe reads an output after the last cycle of a step.
type Probe struct {
	Label  string
	Index  int
	Signal string
}

// A Step is the unit of stimulus generated by a phase.
type Step struct {
	Cycles []Cycle
	Probe  *Probe
}

// Apply drives the cycle into a model.
func (c Cycle) Apply(m rtl.Model) {
	for _, a := range c.Inputs {
		m.SetInput(a.Signal, a.Value)
	}

	if c.Pulse {
		rtl.Pulse(m)
		return
	}

	m.Eval()
}

// Pulses returns the number of clock pulses in the step.
func (s Step) Pulses() int {
	n := 0

	for _, c := range s.Cycles {
		if c.Pulse {
			n++
		}
	}

	return n
}

// Input returns the last value the step assigns to signal.
func (s Step) Input(signal string) (uint32, bool) {
	var (
		value uint32
		found bool
	)

	for _, c := range s.Cycles {
		for _, a := range c.Inputs {
			if a.Signal == signal {
				value = a.Value
				found = true
			}
		}
	}

	return value, found
}
