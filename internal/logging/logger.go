// Package logging provides colored, leveled log output for the ghost-agent
// CLI.
//
// All output functions write a prefixed, color-coded line to stderr, keeping
// stdout free for command output. Debug output is suppressed unless verbose
// mode is enabled via SetVerbose(true). When a log file is open (see
// OpenLogFile) every emitted line is mirrored into it with a timestamp.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	mu sync.Mutex

	// verbose controls whether Debug() produces output.
	verbose bool

	// secrets are masked in every line.
	secrets []string
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	phasePrefix   = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetSecrets replaces the set of strings masked as "***" in all output.
func SetSecrets(values ...string) {
	mu.Lock()
	defer mu.Unlock()
	secrets = secrets[:0]
	for _, s := range values {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
}

func redact(msg string) string {
	for _, s := range secrets {
		msg = strings.ReplaceAll(msg, s, "***")
	}
	return msg
}

func emit(level, prefix, msg string) {
	mu.Lock()
	defer mu.Unlock()
	msg = redact(msg)
	fmt.Fprintln(os.Stderr, prefix+" "+msg)
	mirror(level, msg)
}

// Info prints an informational message in blue.
func Info(msg string) {
	emit(levelInfo, infoPrefix("[INFO]"), msg)
}

// Success prints a success message in green.
func Success(msg string) {
	emit(levelSuccess, successPrefix("[SUCCESS]"), msg)
}

// Warn prints a warning message in yellow.
func Warn(msg string) {
	emit(levelWarn, warnPrefix("[WARN]"), msg)
}

// Error prints an error message in red.
func Error(msg string) {
	emit(levelError, errorPrefix("[ERROR]"), msg)
}

// Phase prints a phase header in cyan, surrounded by separator lines.
func Phase(msg string) {
	mu.Lock()
	defer mu.Unlock()
	msg = redact(msg)
	sep := phasePrefix("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(os.Stderr, sep)
	fmt.Fprintln(os.Stderr, phasePrefix("[PHASE]")+" "+msg)
	fmt.Fprintln(os.Stderr, sep)
	mirror(levelPhase, msg)
}

// Debug prints a debug message in blue, only when verbose mode is enabled.
func Debug(msg string) {
	mu.Lock()
	on := verbose
	mu.Unlock()
	if !on {
		return
	}
	emit(levelDebug, debugPrefix("[DEBUG]"), msg)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(0)    => "0s"
//	FormatDuration(45)   => "45s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
