package testbench

import (
	"fmt"

	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/sim/timing"
)

// Config holds the run parameters of the standard three-phase run.
type Config struct {
	ResetCycles int
	Steps       int
	BaseA       uint32
	BaseB       uint32
	Stride      uint32
	SizeB       rtl.AccessSize
	Freq        timing.Freq
}

// DefaultConfig returns 10 reset pulses and 100 word accesses per port,
// starting at 0x20000 for port A and 0x100000 for port B.
func DefaultConfig() Config {
	return Config{
		ResetCycles: 10,
		Steps:       100,
		BaseA:       0x20000,
		BaseB:       0x100000,
		Stride:      4,
		SizeB:       rtl.SizeWord,
		Freq:        1 * timing.GHz,
	}
}

// Validate reports settings that cannot produce a run.
func (c Config) Validate() error {
	switch {
	case c.ResetCycles < 0:
		return fmt.Errorf("reset cycles must not be negative, got %d", c.ResetCycles)
	case c.Steps < 0:
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	case c.SizeB > rtl.SizeWord:
		return fmt.Errorf("port B transfer size %s is wider than the data bus", c.SizeB)
	case c.Freq <= 0:
		return fmt.Errorf("frequency must be positive, got %v", float64(c.Freq))
	}

	return nil
}

// Phases returns the reset, read-only and read/write phases in order.
func Phases(c Config) []Phase {
	return []Phase{
		ResetPhase{Cycles: c.ResetCycles},
		ReadOnlyPhase{Base: c.BaseA, Stride: c.Stride, Count: c.Steps},
		ReadWritePhase{
			Base:   c.BaseB,
			Stride: c.Stride,
			Count:  c.Steps,
			Size:   c.SizeB,
		},
	}
}
