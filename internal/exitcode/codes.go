// Package exitcode defines named exit codes for the ghost-agent CLI.
//
// A session that ran, skipped or failed internally always exits with
// Success; the scheduler that invokes the agent should never see a failed
// job because a repository misbehaved.
package exitcode

const (
	Success     = 0   // Session finished, whatever it did
	Error       = 1   // Invalid command-line usage
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
