package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/ghost-agent/internal/cli"
	"github.com/CodexForgeBR/ghost-agent/internal/exitcode"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	code := exitcode.Success
	rootCmd := newRootCmd(&code)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
	os.Exit(code)
}

// newRootCmd builds the command tree. A session run stores its exit code in
// code; usage errors are returned from Execute instead.
func newRootCmd(code *int) *cobra.Command {
	opts := &cli.Options{}

	rootCmd := &cobra.Command{
		Use:     "ghost-agent",
		Short:   "Scheduled repository activity agent",
		Long:    "ghost-agent decides from a time-of-day schedule whether to run, then applies and retracts small comment edits across a set of repositories.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags after parsing
			if err := cli.ValidateFlags(cmd, opts); err != nil {
				return err
			}
			*code = runSession(cmd, opts)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, opts)
	cli.SetCustomHelp(rootCmd)

	rootCmd.AddCommand(newConfigCmd(opts), newHistoryCmd(opts))
	return rootCmd
}
