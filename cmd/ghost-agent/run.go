package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/ghost-agent/internal/banner"
	"github.com/CodexForgeBR/ghost-agent/internal/cli"
	"github.com/CodexForgeBR/ghost-agent/internal/config"
	"github.com/CodexForgeBR/ghost-agent/internal/exitcode"
	"github.com/CodexForgeBR/ghost-agent/internal/git"
	"github.com/CodexForgeBR/ghost-agent/internal/history"
	"github.com/CodexForgeBR/ghost-agent/internal/logging"
	"github.com/CodexForgeBR/ghost-agent/internal/schedule"
	"github.com/CodexForgeBR/ghost-agent/internal/session"
	sighandler "github.com/CodexForgeBR/ghost-agent/internal/signal"
)

const publishMessage = "chore: update activity log"

// runSession runs one scheduled session. Every failure past flag parsing is
// logged and still yields exitcode.Success, except an interrupt.
func runSession(cmd *cobra.Command, opts *cli.Options) int {
	cfg, err := config.LoadWithPrecedence(opts.ConfigFile, cli.Overrides(cmd, opts))
	if err != nil {
		logging.Error(fmt.Sprintf("Configuration error: %v", err))
		return exitcode.Success
	}
	logging.SetVerbose(cfg.Verbose)

	loc, err := schedule.LoadLocation(cfg.Timezone)
	if err != nil {
		logging.Error(fmt.Sprintf("Configuration error: %v", err))
		return exitcode.Success
	}

	if cfg.LogFile != "" {
		closer, err := logging.OpenLogFile(cfg.LogFile, loc)
		if err != nil {
			logging.Warn(fmt.Sprintf("Logging to console only: %v", err))
		} else {
			defer closer.Close()
		}
	}

	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		logging.Error(fmt.Sprintf("%s is not set; no repository will be touched", cfg.TokenEnv))
		return exitcode.Success
	}
	logging.SetSecrets(token)

	if err := git.RequireTools("git"); err != nil {
		logging.Error(err.Error())
		return exitcode.Success
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var interrupted atomic.Bool
	stop := sighandler.SetupSignalHandler(ctx, cancel, func() {
		interrupted.Store(true)
		logging.Warn("Interrupted; stopping after the current repository")
	})
	defer stop()

	sched := newScheduler(cfg, opts, token, loc)

	res := sched.Begin()
	if opts.At != "" {
		at, err := schedule.ParseClock(opts.At, res.Time, loc)
		if err != nil {
			logging.Error(fmt.Sprintf("--at: %v", err))
			return exitcode.Success
		}
		res.Time = at
		res.Hour = at.Hour()
	}

	banner.PrintStartupBanner(banner.Startup{
		SessionID: res.SessionID,
		Time:      res.Time.Format("2006-01-02 15:04"),
		Hour:      res.Hour,
		Timezone:  loc.String(),
		Repos:     len(cfg.Repos),
		DryRun:    opts.DryRun,
	})

	start := time.Now()
	res = sched.RunFrom(ctx, res)
	elapsed := int(time.Since(start).Seconds())

	switch {
	case !res.ShouldRun:
		reason := "schedule roll did not trigger"
		if !res.Decision.Matched {
			reason = "no activity scheduled"
		}
		banner.PrintSkipBanner(res.Hour, reason)
	case res.Interrupted:
		banner.PrintInterruptedBanner(res.Completed, res.Planned)
	default:
		retracted := 0
		if res.Retracted {
			retracted = 1
		}
		banner.PrintSummaryBanner(res.Completed, res.Planned, retracted, res.Attempts, elapsed)
	}

	if opts.PublishLog && !interrupted.Load() {
		publishLog(ctx, cfg)
	}

	if interrupted.Load() {
		return exitcode.Interrupted
	}
	return exitcode.Success
}

func newScheduler(cfg *config.Config, opts *cli.Options, token string, loc *time.Location) *session.Scheduler {
	var store history.Store = history.NewFileStore(cfg.HistoryFile)
	if opts.DryRun {
		store = history.ReadOnly{Store: store}
	}

	factory := &git.Factory{
		Runner:    &git.ExecRunner{Secrets: []string{token}},
		Token:     token,
		UserName:  cfg.GitUserName,
		UserEmail: cfg.GitUserEmail,
		BaseDir:   cfg.WorkDir,
		NoPush:    opts.DryRun,
		Retry: git.RetryConfig{
			MaxRetries: cfg.CloneRetries,
			OnRetry: func(attempt int, delay time.Duration, err error) {
				logging.Warn(fmt.Sprintf("Clone attempt %d failed, retrying in %s: %v", attempt, delay, err))
			},
		},
	}

	return &session.Scheduler{
		Config:     cfg,
		History:    store,
		Workspaces: factory,
		Rand:       newRand(opts),
		Location:   loc,
		Force:      opts.Force,
		Commits:    opts.Commits,
	}
}

// newRand returns a seeded source when --seed is given, a random one
// otherwise.
func newRand(opts *cli.Options) *rand.Rand {
	if opts.Seed != 0 {
		seed := uint64(opts.Seed)
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func publishLog(ctx context.Context, cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		logging.Warn(fmt.Sprintf("Log not published: %v", err))
		return
	}
	err = git.PublishLog(ctx, &git.ExecRunner{}, git.PublishOptions{
		Dir:       wd,
		File:      cfg.LogFile,
		Message:   publishMessage,
		UserName:  cfg.GitUserName,
		UserEmail: cfg.GitUserEmail,
	})
	if err != nil {
		logging.Warn(fmt.Sprintf("Log not published: %v", err))
		return
	}
	logging.Success("Activity log published")
}
