package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/ghost-agent/internal/cli"
	"github.com/CodexForgeBR/ghost-agent/internal/config"
	"github.com/CodexForgeBR/ghost-agent/internal/history"
	"github.com/CodexForgeBR/ghost-agent/internal/workspace"
)

func loadConfig(cmd *cobra.Command, opts *cli.Options) (*config.Config, error) {
	if err := cli.ValidateFlags(cmd, opts); err != nil {
		return nil, err
	}
	return config.LoadWithPrecedence(opts.ConfigFile, cli.Overrides(cmd, opts))
}

func newConfigCmd(opts *cli.Options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := config.Render(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: "+strings.Join(config.Formats, ", "))
	return cmd
}

func newHistoryCmd(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded change that the next session may retract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rec, err := history.NewFileStore(cfg.HistoryFile).Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintln(out, "No recorded change.")
				return nil
			}
			fmt.Fprintf(out, "Repository: %s (%s)\n", rec.Repository, workspace.Name(rec.Repository))
			fmt.Fprintf(out, "File:       %s\n", rec.RelativePath)
			fmt.Fprintf(out, "Content:    %s\n", rec.AddedContent)
			fmt.Fprintf(out, "Recorded:   %s\n", rec.Timestamp.Format("2006-01-02 15:04:05 MST"))
			if rec.Separator != nil {
				sep, _ := json.Marshal(*rec.Separator)
				fmt.Fprintf(out, "Separator:  %s\n", sep)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the recorded change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := history.NewFileStore(cfg.HistoryFile).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	return cmd
}
