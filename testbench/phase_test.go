package testbench_test

import (
	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/testbench"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func inputOf(step testbench.Step, signal string) uint32 {
	value, _ := step.Input(signal)
	return value
}

var _ = Describe("Phases", func() {
	It("should build the default run", func() {
		phases := testbench.Phases(testbench.DefaultConfig())

		Expect(phases).To(HaveLen(3))
		Expect(phases[0].Name()).To(Equal("reset"))
		Expect(phases[0].Len()).To(Equal(11))
		Expect(phases[1].Name()).To(Equal("read-only"))
		Expect(phases[1].Len()).To(Equal(100))
		Expect(phases[2].Name()).To(Equal("read-write"))
		Expect(phases[2].Len()).To(Equal(100))
	})

	Context("reset", func() {
		phase := testbench.ResetPhase{Cycles: 10}

		It("should pulse with reset asserted", func() {
			for i := 0; i < 10; i++ {
				step := phase.Step(i)

				Expect(step.Pulses()).To(Equal(1))
				Expect(step.Probe).To(BeNil())
				Expect(inputOf(step, rtl.Reset)).To(Equal(uint32(1)))
			}
		})

		It("should release reset without a clock edge", func() {
			step := phase.Step(10)

			Expect(step.Pulses()).To(Equal(0))
			Expect(step.Probe).To(BeNil())
			Expect(step.Cycles[0].Inputs).To(Equal([]testbench.Assignment{
				{Signal: rtl.Clk, Value: 0},
				{Signal: rtl.Reset, Value: 0},
			}))
		})

		It("should panic outside of the phase", func() {
			Expect(func() { phase.Step(11) }).To(Panic())
			Expect(func() { phase.Step(-1) }).To(Panic())
		})
	})

	Context("read-only", func() {
		phase := testbench.ReadOnlyPhase{Base: 0x20000, Stride: 4, Count: 100}

		It("should read base plus four times the step", func() {
			for i := 0; i < phase.Len(); i++ {
				step := phase.Step(i)

				addr, found := step.Input(rtl.AddrA)
				Expect(found).To(BeTrue())
				Expect(addr).To(Equal(uint32(0x20000 + 4*i)))
				Expect(inputOf(step, rtl.ReA)).To(Equal(uint32(1)))
				Expect(step.Pulses()).To(Equal(1))
			}

			Expect(phase.Address(99)).To(Equal(uint32(0x2018c)))
		})

		It("should probe rdtAo", func() {
			Expect(phase.Step(7).Probe).To(Equal(&testbench.Probe{
				Label:  "rdtA",
				Index:  7,
				Signal: rtl.RdtAo,
			}))
		})
	})

	Context("read-write", func() {
		phase := testbench.ReadWritePhase{
			Base:   0x100000,
			Stride: 4,
			Count:  100,
			Size:   rtl.SizeWord,
		}

		It("should write the step index and read it back", func() {
			step := phase.Step(5)

			Expect(step.Cycles).To(HaveLen(2))
			Expect(step.Pulses()).To(Equal(2))
			Expect(step.Cycles[0].Inputs).To(ConsistOf(
				testbench.Assignment{Signal: rtl.WeB, Value: 1},
				testbench.Assignment{Signal: rtl.AddrB, Value: 0x100014},
				testbench.Assignment{Signal: rtl.SizeB, Value: 2},
				testbench.Assignment{Signal: rtl.WdtB, Value: 5},
			))
			Expect(step.Cycles[1].Inputs).To(ConsistOf(
				testbench.Assignment{Signal: rtl.WeB, Value: 0},
				testbench.Assignment{Signal: rtl.ReB, Value: 1},
			))
			Expect(step.Probe).To(Equal(&testbench.Probe{
				Label:  "rdtB",
				Index:  5,
				Signal: rtl.RdtBo,
			}))
		})

		It("should generate the same step every time", func() {
			Expect(phase.Step(42)).To(Equal(phase.Step(42)))
		})
	})
})

var _ = Describe("Config", func() {
	It("should accept the defaults", func() {
		Expect(testbench.DefaultConfig().Validate()).To(Succeed())
	})

	DescribeTable("invalid settings",
		func(mutate func(*testbench.Config)) {
			cfg := testbench.DefaultConfig()
			mutate(&cfg)

			Expect(cfg.Validate()).NotTo(Succeed())
		},
		Entry("negative reset cycles", func(c *testbench.Config) {
			c.ResetCycles = -1
		}),
		Entry("negative steps", func(c *testbench.Config) { c.Steps = -3 }),
		Entry("double word transfers", func(c *testbench.Config) {
			c.SizeB = rtl.SizeDouble
		}),
		Entry("zero frequency", func(c *testbench.Config) { c.Freq = 0 }),
	)
})
