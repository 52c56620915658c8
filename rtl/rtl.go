// Package rtl describes the signal-level contract between a testbench and a
// cycle-evaluated hardware model.
//
// A Model behaves like a compiled RTL simulation: inputs are assigned by name,
// Eval settles the logic for the current input values, and outputs are read
// back by name. Outputs are only meaningful after an Eval that follows the last
// input assignment.
package rtl

// Model is a cycle-evaluated hardware model.
type Model interface {
	// SetInput assigns a value to an input signal.
	SetInput(name string, value uint32)

	// Eval settles the model for the current inputs. Synchronous logic runs
	// when Eval observes a rising edge of the clock.
	Eval()

	// Output returns the value of an output signal.
	Output(name string) uint32
}

// Signals of the dual-port RAM. Port A is read-only, port B is read/write.
const (
	Clk   = "clk"
	Reset = "reset"

	ReA   = "reA"
	AddrA = "addrA"
	RdtAo = "rdtAo"

	WeB   = "weB"
	ReB   = "reB"
	AddrB = "addrB"
	SizeB = "sizeB"
	WdtB  = "wdtB"
	RdtBo = "rdtBo"
)

// Pulse drives one full clock cycle: clock low, evaluate, clock high,
// evaluate. Synchronous logic of the model runs on the second Eval.
func Pulse(m Model) {
	m.SetInput(Clk, 0)
	m.Eval()
	m.SetInput(Clk, 1)
	m.Eval()
}
