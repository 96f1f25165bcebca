// Package cli provides flag binding and validation for the ghost-agent CLI.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/ghost-agent/internal/schedule"
)

// Options holds every command-line flag. Flags that mirror config keys are
// turned into overrides by Overrides; the rest only steer a single run.
type Options struct {
	ConfigFile  string
	HistoryFile string
	LogFile     string
	Timezone    string
	Verbose     bool

	Force      bool
	Commits    int
	At         string
	Seed       int64
	DryRun     bool
	PublishLog bool
}

// overrideKeys maps flag names to the config keys they replace.
var overrideKeys = map[string]string{
	"history-file": "history_file",
	"log-file":     "log_file",
	"timezone":     "timezone",
	"verbose":      "verbose",
}

// BindFlags registers the CLI flags on cmd. Flags shared with subcommands are
// persistent. Call ValidateFlags after parsing to check flag values.
func BindFlags(cmd *cobra.Command, opts *Options) {
	pflags := cmd.PersistentFlags()

	// Configuration
	pflags.StringVar(&opts.ConfigFile, "config", "", "Path to config file (default: config.json)")
	pflags.StringVar(&opts.HistoryFile, "history-file", "", "Path to history file")
	pflags.StringVar(&opts.LogFile, "log-file", "", "Path to log file")
	pflags.StringVar(&opts.Timezone, "timezone", "", "IANA timezone for schedule evaluation")
	pflags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug output")

	flags := cmd.Flags()

	// Scheduling
	flags.BoolVar(&opts.Force, "force", false, "Run regardless of the schedule roll")
	flags.IntVar(&opts.Commits, "commits", 0, "Number of operations to perform (default: planned by hour)")
	flags.StringVar(&opts.At, "at", "", "Evaluate the schedule at this time (ISO 8601, HH:MM, YYYY-MM-DD HH:MM)")
	flags.Int64Var(&opts.Seed, "seed", 0, "Seed the random source for a reproducible session")

	// Output
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Commit locally only: never push, never write history")
	flags.BoolVar(&opts.PublishLog, "publish-log", false, "Commit and push the log file in the current repository")
}

// ValidateFlags checks flag values after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, opts *Options) error {
	// --config must exist if provided
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if cmd.Flags().Changed("commits") && opts.Commits < 1 {
		return fmt.Errorf("--commits must be at least 1, got: %d", opts.Commits)
	}

	if opts.At != "" {
		if _, err := schedule.ParseClock(opts.At, time.Now(), time.UTC); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}

	if opts.Timezone != "" {
		if _, err := time.LoadLocation(opts.Timezone); err != nil {
			return fmt.Errorf("--timezone: %w", err)
		}
	}

	if opts.PublishLog && opts.DryRun {
		return fmt.Errorf("--publish-log and --dry-run are mutually exclusive")
	}

	return nil
}

// Overrides returns config overrides for every config-backed flag the user
// set explicitly, keyed by config key.
func Overrides(cmd *cobra.Command, opts *Options) map[string]any {
	values := map[string]any{
		"history-file": opts.HistoryFile,
		"log-file":     opts.LogFile,
		"timezone":     opts.Timezone,
		"verbose":      opts.Verbose,
	}

	out := make(map[string]any)
	for flag, key := range overrideKeys {
		if cmd.Flags().Changed(flag) {
			out[key] = values[flag]
		}
	}
	return out
}
