// Package session runs one scheduled activity session: decide whether to run,
// optionally undo the previous change, then apply a planned number of new
// changes across the configured repositories.
//
// Nothing escapes a session. Per-repository failures are logged and the
// iteration is skipped; the caller only sees a Result.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CodexForgeBR/ghost-agent/internal/change"
	"github.com/CodexForgeBR/ghost-agent/internal/config"
	"github.com/CodexForgeBR/ghost-agent/internal/history"
	"github.com/CodexForgeBR/ghost-agent/internal/logging"
	"github.com/CodexForgeBR/ghost-agent/internal/schedule"
	"github.com/CodexForgeBR/ghost-agent/internal/workspace"
)

// Scheduler runs sessions. Config, History, Workspaces and Rand are
// required; the remaining fields have defaults.
type Scheduler struct {
	Config     *config.Config
	History    history.Store
	Workspaces workspace.Factory
	Rand       schedule.Rand

	// Now defaults to time.Now; Location to UTC.
	Now      func() time.Time
	Location *time.Location

	// Pause sleeps between operations. Defaults to schedule.Pause.
	Pause func(ctx context.Context, d time.Duration) error

	// NewID names the session. Defaults to a random UUID.
	NewID func() string

	// Force skips the schedule roll; Commits > 0 replaces the planned count.
	Force   bool
	Commits int
}

// Result summarizes a session.
type Result struct {
	SessionID string
	Time      time.Time
	Hour      int

	ShouldRun bool
	Decision  schedule.Decision

	Planned     int
	Completed   int
	Attempts    int
	Retracted   bool
	Interrupted bool
}

// Begin stamps a new session: its ID and the local time it is evaluated at.
func (s *Scheduler) Begin() Result {
	now := s.now()
	return Result{SessionID: s.newID(), Time: now, Hour: now.Hour()}
}

// Run decides whether this invocation runs and, if so, runs the session.
func (s *Scheduler) Run(ctx context.Context) Result {
	return s.RunFrom(ctx, s.Begin())
}

// RunFrom is Run for a session already stamped by Begin.
func (s *Scheduler) RunFrom(ctx context.Context, res Result) Result {
	if s.Force {
		res.ShouldRun = true
		logging.Info("Schedule check skipped (--force)")
	} else {
		res.Decision = schedule.ShouldRun(s.Config.Schedule.Blocks, res.Hour, s.Rand)
		res.ShouldRun = res.Decision.Run
		logDecision(res.Hour, res.Decision)
	}
	if !res.ShouldRun {
		return res
	}

	target := s.Commits
	if target > 0 {
		logging.Info(fmt.Sprintf("Operation count fixed at %d", target))
	} else {
		target = schedule.PlanOperationCount(res.Hour, s.Rand)
		logging.Info(fmt.Sprintf("Planned %d operations for hour %d", target, res.Hour))
	}

	out := s.RunSession(ctx, target)
	res.Planned = out.Planned
	res.Completed = out.Completed
	res.Attempts = out.Attempts
	res.Retracted = out.Retracted
	res.Interrupted = out.Interrupted
	return res
}

func logDecision(hour int, d schedule.Decision) {
	switch {
	case !d.Matched:
		logging.Info(fmt.Sprintf("No schedule block covers hour %d", hour))
	case d.Run:
		logging.Info(fmt.Sprintf("Block %s triggered: roll %.3f < %.2f", describe(d.Block), d.Roll, d.Block.Probability))
	default:
		logging.Info(fmt.Sprintf("Block %s not triggered: roll %.3f >= %.2f", describe(d.Block), d.Roll, d.Block.Probability))
	}
}

func describe(b schedule.Block) string {
	span := fmt.Sprintf("%02d:00-%02d:59", b.Start, b.End)
	if b.Description == "" {
		return span
	}
	return fmt.Sprintf("%q (%s)", b.Description, span)
}

// RunSession performs up to target operations: at most one retraction of
// the recorded change, then new changes until target is reached or the
// attempt budget runs out. Only the change made by the last planned
// operation is recorded.
func (s *Scheduler) RunSession(ctx context.Context, target int) Result {
	res := Result{Planned: target}
	if target <= 0 {
		return res
	}

	if s.retract(ctx) {
		res.Retracted = true
		res.Completed++
	}

	repos := s.Config.Repos
	if len(repos) == 0 {
		logging.Error("No repositories configured; nothing to do")
		return res
	}

	budget := s.Config.AttemptBudget(target)
	for res.Completed < target && res.Attempts < budget {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		res.Attempts++

		repo := repos[s.Rand.IntN(len(repos))]
		last := res.Completed == target-1
		if s.apply(ctx, repo, last) {
			res.Completed++
		}

		if res.Completed < target && res.Attempts < budget {
			d := schedule.Jitter(s.Rand, s.Config.PauseMinSeconds, s.Config.PauseMaxSeconds)
			logging.Debug(fmt.Sprintf("Pausing %s", d))
			if err := s.pause(ctx, d); err != nil {
				res.Interrupted = true
				break
			}
		}
	}

	if res.Completed < target && !res.Interrupted {
		logging.Warn(fmt.Sprintf("Completed %d of %d operations after %d attempts", res.Completed, target, res.Attempts))
	}
	return res
}

// retract undoes the recorded change when the undo roll succeeds. It
// reports whether a retraction was pushed.
func (s *Scheduler) retract(ctx context.Context) bool {
	rec, err := s.History.Load()
	if err != nil {
		logging.Warn(fmt.Sprintf("Ignoring history: %v", err))
		return false
	}
	if rec == nil {
		logging.Debug("No recorded change to retract")
		return false
	}

	roll := s.Rand.Float64()
	if roll >= s.Config.UndoProbability {
		logging.Debug(fmt.Sprintf("Keeping recorded change: roll %.3f >= %.2f", roll, s.Config.UndoProbability))
		return false
	}
	if rec.Repository == "" {
		logging.Warn("Recorded change has no repository; cannot retract")
		return false
	}

	name := workspace.Name(rec.Repository)
	logging.Info(fmt.Sprintf("Retracting %s in %s", rec.RelativePath, name))

	err = s.withWorkspace(ctx, rec.Repository, func(ws workspace.Workspace) error {
		if err := change.Retract(ws, *rec); err != nil {
			return err
		}
		if err := ws.Commit(ctx, s.Config.CleanupMessage); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := ws.Push(ctx); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		return nil
	})
	switch {
	case errors.Is(err, change.ErrContentMismatch):
		logging.Warn(fmt.Sprintf("%s in %s changed since it was recorded; leaving it alone", rec.RelativePath, name))
		return false
	case err != nil:
		logging.Error(fmt.Sprintf("Retraction in %s failed: %v", name, err))
		return false
	}

	if err := s.History.Clear(); err != nil {
		logging.Error(fmt.Sprintf("Failed to clear history: %v", err))
	}
	logging.Success(fmt.Sprintf("Retracted %s in %s", rec.RelativePath, name))
	return true
}

// apply makes one change in repo and pushes it. When last is set the change
// becomes the new history record.
func (s *Scheduler) apply(ctx context.Context, repo string, last bool) bool {
	name := workspace.Name(repo)
	opts := change.Options{
		Extensions: s.Config.Extensions,
		IgnoreDirs: s.Config.IgnoreDirs,
		Comments:   s.Config.Comments,
	}

	var rec *history.Record
	err := s.withWorkspace(ctx, repo, func(ws workspace.Workspace) error {
		var err error
		rec, err = change.Apply(ws, opts, s.Rand, s.now())
		if err != nil {
			return err
		}
		message := s.Config.CommitMessages[s.Rand.IntN(len(s.Config.CommitMessages))]
		if err := ws.Commit(ctx, message); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := ws.Push(ctx); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		logging.Success(fmt.Sprintf("%s: %q on %s", name, message, rec.RelativePath))
		return nil
	})
	switch {
	case errors.Is(err, change.ErrNoEligibleFiles), errors.Is(err, change.ErrUnsupportedType):
		logging.Warn(fmt.Sprintf("Skipping %s: %v", name, err))
		return false
	case err != nil:
		logging.Error(fmt.Sprintf("Skipping %s: %v", name, err))
		return false
	}

	if last {
		rec.Repository = repo
		if err := s.History.Save(*rec); err != nil {
			logging.Error(fmt.Sprintf("Failed to record change: %v", err))
		} else {
			logging.Debug(fmt.Sprintf("Recorded %s in %s for a later retraction", rec.RelativePath, name))
		}
	}
	return true
}

// withWorkspace acquires repo, runs fn and always disposes the workspace.
func (s *Scheduler) withWorkspace(ctx context.Context, repo string, fn func(workspace.Workspace) error) (err error) {
	ws, err := s.Workspaces.Acquire(ctx, repo)
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logging.Warn(fmt.Sprintf("Failed to dispose workspace for %s: %v", workspace.Name(repo), cerr))
		}
	}()
	return fn(ws)
}

func (s *Scheduler) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (s *Scheduler) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Scheduler) pause(ctx context.Context, d time.Duration) error {
	if s.Pause != nil {
		return s.Pause(ctx, d)
	}
	return schedule.Pause(ctx, d)
}
