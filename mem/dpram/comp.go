// Package dpram provides a dual-port RAM model with one read-only port (A)
// and one read/write port (B) evaluated at clock edges.
package dpram

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/sarchlab/dpram/mem/elfloader"
	"github.com/sarchlab/dpram/mem/storage"
	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/naming"
)

// Port names used in Access records.
const (
	PortA = "A"
	PortB = "B"
)

// A Comp is a synchronous dual-port RAM.
//
// Inputs are latched by SetInput and sampled on the rising edge of clk seen by
// Eval. On that edge, with reset low:
//
//   - port A reads the word at addrA into rdtAo when reA is high;
//   - port B reads addrB into rdtBo when reB is high, then writes wdtB when
//     weB is high. A read and a write on the same edge see the old contents.
//
// With reset high both read registers clear and memory is not accessed.
// Outputs hold their value between edges.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	storage *storage.Storage
	image   *elfloader.Image

	clk, reset          uint32
	reA, addrA          uint32
	weB, reB            uint32
	addrB, sizeB, wdtB  uint32
	rdtA, rdtB, prevClk uint32

	cycle uint64
}

// Storage returns the memory behind both ports.
func (c *Comp) Storage() *storage.Storage {
	return c.storage
}

// Cycle returns the number of rising edges observed.
func (c *Comp) Cycle() uint64 {
	return c.cycle
}

// Image returns the ELF image loaded into the memory, if any.
func (c *Comp) Image() (elfloader.Image, bool) {
	if c.image == nil {
		return elfloader.Image{}, false
	}

	return *c.image, true
}

// LoadELF places an ELF executable into the memory.
func (c *Comp) LoadELF(path string) (elfloader.Image, error) {
	img, err := elfloader.LoadFile(path, c.storage)
	if err != nil {
		return elfloader.Image{}, err
	}

	c.image = &img

	return img, nil
}

func (c *Comp) inputRegister(name string) *uint32 {
	switch name {
	case rtl.Clk:
		return &c.clk
	case rtl.Reset:
		return &c.reset
	case rtl.ReA:
		return &c.reA
	case rtl.AddrA:
		return &c.addrA
	case rtl.WeB:
		return &c.weB
	case rtl.ReB:
		return &c.reB
	case rtl.AddrB:
		return &c.addrB
	case rtl.SizeB:
		return &c.sizeB
	case rtl.WdtB:
		return &c.wdtB
	}

	return nil
}

// SetInput assigns an input signal.
func (c *Comp) SetInput(name string, value uint32) {
	reg := c.inputRegister(name)
	if reg == nil {
		c.signalNotFound(name, "input")
	}

	*reg = value
}

// Output returns an output signal.
func (c *Comp) Output(name string) uint32 {
	switch name {
	case rtl.RdtAo:
		return c.rdtA
	case rtl.RdtBo:
		return c.rdtB
	}

	c.signalNotFound(name, "output")

	return 0
}

func (c *Comp) signalNotFound(name, direction string) {
	available := []string{
		rtl.Clk, rtl.Reset, rtl.ReA, rtl.AddrA,
		rtl.WeB, rtl.ReB, rtl.AddrB, rtl.SizeB, rtl.WdtB,
	}
	if direction == "output" {
		available = []string{rtl.RdtAo, rtl.RdtBo}
	}
	sort.Strings(available)

	errMsg := fmt.Sprintf(
		"%s %s is not available on component %s.\n",
		direction, name, c.Name())
	errMsg += "Available signals include:\n"
	for _, n := range available {
		errMsg += fmt.Sprintf("\t%s\n", n)
	}
	fmt.Fprint(os.Stderr, errMsg)

	log.Panicf("signal %s not found", name)
}

// Eval runs the synchronous logic if the clock rose since the last Eval.
func (c *Comp) Eval() {
	rising := c.prevClk == 0 && c.clk != 0
	c.prevClk = c.clk

	if !rising {
		return
	}

	c.cycle++
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosEdge,
		Item:   Edge{Cycle: c.cycle, Reset: c.reset != 0},
	})

	if c.reset != 0 {
		c.rdtA = 0
		c.rdtB = 0

		return
	}

	c.evalPortA()
	c.evalPortB()
}

func (c *Comp) evalPortA() {
	if c.reA == 0 {
		return
	}

	c.rdtA = c.read(PortA, c.addrA, rtl.SizeWord)
}

func (c *Comp) evalPortB() {
	if c.weB == 0 && c.reB == 0 {
		return
	}

	size := rtl.AccessSize(c.sizeB)
	if size > rtl.SizeWord {
		log.Panicf("%s: port B does not support %s transfers", c.Name(), size)
	}

	if c.reB != 0 {
		c.rdtB = c.read(PortB, c.addrB, size)
	}

	if c.weB != 0 {
		c.write(PortB, c.addrB, size, c.wdtB)
	}
}

func (c *Comp) read(port string, addr uint32, size rtl.AccessSize) uint32 {
	var (
		data uint32
		err  error
	)

	switch size {
	case rtl.SizeByte:
		var b uint8
		b, err = c.storage.Read8(uint64(addr))
		data = uint32(b)
	case rtl.SizeHalf:
		var h uint16
		h, err = c.storage.Read16(uint64(addr))
		data = uint32(h)
	default:
		data, err = c.storage.Read32(uint64(addr))
	}

	if err != nil {
		log.Panic(err)
	}

	c.traceAccess(port, AccessRead, addr, size, data)

	return data
}

func (c *Comp) write(port string, addr uint32, size rtl.AccessSize, data uint32) {
	var err error

	switch size {
	case rtl.SizeByte:
		err = c.storage.Write8(uint64(addr), uint8(data))
	case rtl.SizeHalf:
		err = c.storage.Write16(uint64(addr), uint16(data))
	default:
		err = c.storage.Write32(uint64(addr), data)
	}

	if err != nil {
		log.Panic(err)
	}

	c.traceAccess(port, AccessWrite, addr, size, data&size.Mask())
}

func (c *Comp) traceAccess(
	port string,
	kind AccessKind,
	addr uint32,
	size rtl.AccessSize,
	data uint32,
) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item: Access{
			Port:    port,
			Kind:    kind,
			Cycle:   c.cycle,
			Address: addr,
			Size:    size,
			Data:    data,
		},
	})
}
