package cmd

import (
	"fmt"
	"os"

	"github.com/sarchlab/dpram/testbench"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <golden> <log>",
		Short: "Compare a run log with a golden log.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			golden, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer golden.Close()

			actual, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer actual.Close()

			err = testbench.CompareGolden(golden, actual)
			if err != nil {
				return fmt.Errorf("%s differs from %s: %w", args[1], args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logs match")

			return nil
		},
	}
}
