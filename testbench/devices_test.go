package testbench_test

import "github.com/sarchlab/dpram/rtl"

// signalDevice keeps inputs by name and detects rising clock edges.
type signalDevice struct {
	inputs  map[string]uint32
	outputs map[string]uint32
	lastClk uint32
	edges   int
	onEdge  func()
}

func newSignalDevice() *signalDevice {
	return &signalDevice{
		inputs:  make(map[string]uint32),
		outputs: make(map[string]uint32),
	}
}

func (d *signalDevice) SetInput(name string, value uint32) {
	d.inputs[name] = value
}

func (d *signalDevice) Output(name string) uint32 {
	return d.outputs[name]
}

func (d *signalDevice) Eval() {
	clk := d.inputs[rtl.Clk]
	rising := d.lastClk == 0 && clk == 1
	d.lastClk = clk

	if !rising {
		return
	}

	d.edges++

	if d.inputs[rtl.Reset] == 1 {
		d.outputs[rtl.RdtAo] = 0
		d.outputs[rtl.RdtBo] = 0

		return
	}

	if d.onEdge != nil {
		d.onEdge()
	}
}

// echoDevice answers every read with the inverted address.
type echoDevice struct {
	*signalDevice
}

func newEchoDevice() *echoDevice {
	d := &echoDevice{signalDevice: newSignalDevice()}
	d.onEdge = func() {
		if d.inputs[rtl.ReA] == 1 {
			d.outputs[rtl.RdtAo] = d.inputs[rtl.AddrA] ^ 0xffffffff
		}

		if d.inputs[rtl.ReB] == 1 {
			d.outputs[rtl.RdtBo] = d.inputs[rtl.AddrB] ^ 0xffffffff
		}
	}

	return d
}

// storeDevice keeps the last value written to each port B address.
type storeDevice struct {
	*signalDevice
	words      map[uint32]uint32
	addrsB     []uint32
	writeSizes []uint32
}

func newStoreDevice() *storeDevice {
	d := &storeDevice{
		signalDevice: newSignalDevice(),
		words:        make(map[uint32]uint32),
	}
	d.onEdge = func() {
		if d.inputs[rtl.ReA] == 1 {
			d.outputs[rtl.RdtAo] = d.words[d.inputs[rtl.AddrA]]
		}

		addr := d.inputs[rtl.AddrB]
		if d.inputs[rtl.ReB] == 1 {
			d.outputs[rtl.RdtBo] = d.words[addr]
		}

		if d.inputs[rtl.WeB] == 1 {
			d.addrsB = append(d.addrsB, addr)
			d.writeSizes = append(d.writeSizes, d.inputs[rtl.SizeB])
			d.words[addr] = d.inputs[rtl.WdtB]
		}
	}

	return d
}
