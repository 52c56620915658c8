package testbench_test

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/sarchlab/dpram/datarecording"
	"github.com/sarchlab/dpram/testbench"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stepRow struct {
	ID        string
	Phase     string
	StepIndex int
	Label     string
	Value     uint32
	Time      float64
}

var _ = Describe("StepRecorder", func() {
	It("should record every step", func() {
		path := filepath.Join(GinkgoT().TempDir(), "steps")
		recorder := datarecording.New(path)

		driver := testbench.MakeBuilder().
			WithOutput(new(bytes.Buffer)).
			WithPhases(
				testbench.ResetPhase{Cycles: 2},
				testbench.ReadOnlyPhase{Base: 0x20000, Stride: 4, Count: 4},
			).
			Build("Driver", newEchoDevice())
		driver.AcceptHook(testbench.NewStepRecorder(recorder))

		Expect(driver.Run()).To(Succeed())
		Expect(recorder.Close()).To(Succeed())

		reader := datarecording.NewReader(path + ".sqlite3")
		defer reader.Close()

		reader.MapTable("step_results", stepRow{})
		results, total, err := reader.Query(
			context.Background(),
			"step_results",
			datarecording.QueryParams{
				Where:   "Label = ?",
				Args:    []any{"rdtA"},
				OrderBy: "StepIndex",
			},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(4))

		last := results[3].(*stepRow)
		Expect(last.Phase).To(Equal("read-only"))
		Expect(last.StepIndex).To(Equal(3))
		Expect(last.Value).To(Equal(^uint32(0x2000c)))
		Expect(last.ID).NotTo(BeEmpty())

		_, all, err := reader.Query(
			context.Background(), "step_results", datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(Equal(7))
	})
	It("should read back the labeled steps in order", func() {
		path := filepath.Join(GinkgoT().TempDir(), "steps")
		recorder := datarecording.New(path)

		driver := testbench.MakeBuilder().
			WithOutput(new(bytes.Buffer)).
			WithPhases(
				testbench.ResetPhase{Cycles: 2},
				testbench.ReadOnlyPhase{Base: 0x20000, Stride: 4, Count: 3},
			).
			Build("Driver", newEchoDevice())
		driver.AcceptHook(testbench.NewStepRecorder(recorder))

		Expect(driver.Run()).To(Succeed())
		Expect(recorder.Close()).To(Succeed())

		reader := datarecording.NewReader(path + ".sqlite3")
		defer reader.Close()

		records, err := testbench.ReadSteps(context.Background(), reader)

		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3))
		for i, r := range records {
			Expect(r.Label).To(Equal("rdtA"))
			Expect(r.Index).To(Equal(i))
			Expect(r.Value).To(Equal(^uint32(0x20000 + 4*i)))
		}
		Expect(records[1].Time).To(BeNumerically(">", records[0].Time))
	})
})
