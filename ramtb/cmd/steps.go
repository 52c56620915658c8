package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/dpram/datarecording"
	"github.com/sarchlab/dpram/testbench"
	"github.com/spf13/cobra"
)

func newStepsCmd() *cobra.Command {
	var golden string

	cmd := &cobra.Command{
		Use:   "steps <db.sqlite3>",
		Short: "Print the values recorded by a --trace-db run.",
		Long: `steps reads the step_results table of a recorded run and prints ` +
			`it in the same "label[index], hex" form as a live run, so that a ` +
			`recording can be checked against a golden log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSteps(cmd, args[0], golden)
		},
	}

	cmd.Flags().StringVar(&golden, "golden", "",
		"Fail if the recorded values differ from this log.")

	return cmd
}

func printSteps(cmd *cobra.Command, dbPath, golden string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return err
	}

	reader := datarecording.NewReader(dbPath)
	defer reader.Close()

	records, err := testbench.ReadSteps(cmd.Context(), reader)
	if err != nil {
		return err
	}

	runLog := new(bytes.Buffer)
	reporter := testbench.NewReporter(io.MultiWriter(cmd.OutOrStdout(), runLog))

	for _, r := range records {
		reporter.Report(r.Label, r.Index, r.Value)
	}

	if reporter.Err() != nil {
		return fmt.Errorf("printing steps: %w", reporter.Err())
	}

	if golden == "" {
		return nil
	}

	return compareWithGolden(golden, runLog)
}
