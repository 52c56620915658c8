package testbench

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sarchlab/dpram/datarecording"
	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/timing"
)

const stepTable = "step_results"

type stepEntry struct {
	ID        string
	Phase     string
	StepIndex int
	Label     string
	Value     uint32
	Time      float64
}

// StepRecorder is a hook that stores every completed step in the
// step_results table.
type StepRecorder struct {
	recorder datarecording.DataRecorder
}

// NewStepRecorder creates the step_results table and returns a hook that fills
// it.
func NewStepRecorder(recorder datarecording.DataRecorder) *StepRecorder {
	recorder.CreateTable(stepTable, stepEntry{})

	return &StepRecorder{recorder: recorder}
}

// Func records StepDone hooks and ignores the others.
func (r *StepRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosStepDone {
		return
	}

	record := ctx.Item.(StepRecord)

	r.recorder.InsertData(stepTable, stepEntry{
		ID:        xid.New().String(),
		Phase:     record.Phase,
		StepIndex: record.Index,
		Label:     record.Label,
		Value:     record.Value,
		Time:      float64(record.Time),
	})
}

// ReadSteps returns the recorded steps that reported a value, in the order
// they completed. Reset cycles are left out.
func ReadSteps(ctx context.Context, reader datarecording.DataReader) (
	[]StepRecord, error,
) {
	reader.MapTable(stepTable, stepEntry{})

	entries, _, err := reader.Query(ctx, stepTable, datarecording.QueryParams{
		Where:   "Label != ?",
		Args:    []any{""},
		OrderBy: "Time, rowid",
	})
	if err != nil {
		return nil, fmt.Errorf("reading steps: %w", err)
	}

	records := make([]StepRecord, 0, len(entries))

	for _, e := range entries {
		entry := e.(*stepEntry)
		records = append(records, StepRecord{
			Phase: entry.Phase,
			Index: entry.StepIndex,
			Label: entry.Label,
			Value: entry.Value,
			Time:  timing.VTimeInSec(entry.Time),
		})
	}

	return records, nil
}
