// Package cmd provides the command-line interface of ramtb.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"
)

const envPrefix = "RAMTB_"

// NewRootCmd creates the ramtb command with its subcommands. The flags of the
// standard flag set, where glog registers its own, are accepted as well.
func NewRootCmd() *cobra.Command {
	return newRootCmd(flag.CommandLine)
}

func newRootCmd(goFlags *flag.FlagSet) *cobra.Command {
	opts := defaultRunOptions()

	rootCmd := &cobra.Command{
		Use:   "ramtb [+plusarg=value...]",
		Short: "Drive the dual-port RAM model and print what it reads.",
		Long: `ramtb holds the dual-port RAM in reset, reads consecutive words ` +
			`through port A, then writes and reads back consecutive words ` +
			`through port B. Every value read is printed as "label[index], hex". ` +
			`Arguments of the form +name=value are passed to the model.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// cobra sets the values of goFlags directly. glog still
			// checks that the set has been parsed before honoring them.
			if err := goFlags.Parse(nil); err != nil {
				return err
			}

			return applyEnv(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}

	opts.bindFlags(rootCmd.Flags())
	rootCmd.PersistentFlags().AddGoFlagSet(goFlags)
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newStepsCmd())

	return rootCmd
}

// Execute runs the root command and exits the process. Exiting goes through
// atexit so that recorders flush their buffers.
func Execute() {
	atexit.Register(glog.Flush)

	err := loadDotEnv(".env")
	if err != nil {
		glog.Errorf("loading .env: %v", err)
		atexit.Exit(1)
	}

	err = NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// envName maps a flag name like trace-db to RAMTB_TRACE_DB.
func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnv fills flags that were not given on the command line from the
// environment.
func applyEnv(flags *pflag.FlagSet) error {
	var err error

	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}

		value, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}

		if setErr := f.Value.Set(value); setErr != nil {
			err = fmt.Errorf("invalid %s: %w", envName(f.Name), setErr)
		}
	})

	return err
}
