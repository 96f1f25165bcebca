// Package banner provides colored banner display functions for the
// ghost-agent CLI.
//
// Banners go to stderr alongside log output and frame the start and end of a
// session.
package banner

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/ghost-agent/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// Startup describes the session being started.
type Startup struct {
	SessionID string
	Time      string
	Hour      int
	Timezone  string
	Repos     int
	DryRun    bool
}

// PrintStartupBanner displays the startup banner with session info.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ghost-agent - scheduled activity session
//	═══════════════════════════════════════════════════
//	  Session:    0b6e3c4e-...
//	  Time:       2025-01-02 14:03 (hour 14, Asia/Kolkata)
//	  Repos:      3
//	═══════════════════════════════════════════════════
func PrintStartupBanner(s Startup) {
	sep := headerColor(rule)
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintln(os.Stderr, headerColor("  ghost-agent - scheduled activity session"))
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintf(os.Stderr, "  Session:    %s\n", s.SessionID)
	fmt.Fprintf(os.Stderr, "  Time:       %s (hour %d, %s)\n", s.Time, s.Hour, s.Timezone)
	fmt.Fprintf(os.Stderr, "  Repos:      %d\n", s.Repos)
	if s.DryRun {
		fmt.Fprintln(os.Stderr, warnColor("  Dry run:    nothing is pushed, history is untouched"))
	}
	fmt.Fprintln(os.Stderr, sep)
}

// PrintSummaryBanner displays the outcome of a session that ran.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Session complete
//	  Operations: 4/5 (1 retraction)
//	  Attempts:   6
//	  Duration:   1m 12s (72s)
//	═══════════════════════════════════════════════════
func PrintSummaryBanner(completed, planned, retracted, attempts, durationSecs int) {
	paint := successColor
	title := "  ✓ Session complete"
	if completed < planned {
		paint = warnColor
		title = "  ⚠ Session finished short of plan"
	}
	sep := paint(rule)
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintln(os.Stderr, paint(title))
	fmt.Fprintf(os.Stderr, "  Operations: %d/%d (%d retraction)\n", completed, planned, retracted)
	fmt.Fprintf(os.Stderr, "  Attempts:   %d\n", attempts)
	fmt.Fprintf(os.Stderr, "  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Fprintln(os.Stderr, sep)
}

// PrintSkipBanner displays when the schedule decided not to run.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  Sleeping: no activity scheduled for hour 5
//	═══════════════════════════════════════════════════
func PrintSkipBanner(hour int, reason string) {
	sep := headerColor(rule)
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintf(os.Stderr, "  Sleeping: %s for hour %d\n", reason, hour)
	fmt.Fprintln(os.Stderr, sep)
}

// PrintInterruptedBanner displays when the session is interrupted.
func PrintInterruptedBanner(completed, planned int) {
	sep := warnColor(rule)
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintln(os.Stderr, warnColor("  ⚠ Session interrupted"))
	fmt.Fprintf(os.Stderr, "  Operations: %d/%d\n", completed, planned)
	fmt.Fprintln(os.Stderr, "  History reflects the last pushed change")
	fmt.Fprintln(os.Stderr, sep)
}
