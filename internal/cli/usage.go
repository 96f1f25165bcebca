package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `ghost-agent - scheduled repository activity agent

USAGE
  ghost-agent [flags]
  ghost-agent config [--format json|yaml|toml]
  ghost-agent history [clear]

FLAGS
  Configuration:
    --config <path>                        Path to config file (default: config.json)
    --history-file <path>                  Path to history file (default: history.json)
    --log-file <path>                      Path to log file (default: ghost_log.txt)
    --timezone <zone>                      IANA timezone for the schedule (default: Asia/Kolkata)
    -v, --verbose                          Enable debug output

  Scheduling:
    --force                                Run regardless of the schedule roll
    --commits <int>                        Number of operations (default: 5-15 from 09:00 to 03:59, else 1-3)
    --at <time>                            Evaluate the schedule at a given time (ISO 8601, HH:MM, YYYY-MM-DD HH:MM)
    --seed <int>                           Seed the random source for a reproducible session

  Output:
    --dry-run                              Commit locally only: never push, never write history
    --publish-log                          Commit and push the log file in the current repository

  Help & Version:
    -h, --help                             Show this help text
    --version                              Show version, commit, build date

ENVIRONMENT
  GH_PAT                                   Token used to push (name set by token_env)
  GHOST_<KEY>                              Override any config key, e.g. GHOST_TIMEZONE=UTC

EXIT CODES
  0   Success              Session finished (including skipped and partial sessions)
  1   Error                Invalid command-line usage
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Run one scheduled session (typically from cron)
  ghost-agent

  # Force three operations now, without pushing
  ghost-agent --force --commits 3 --dry-run

  # See whether 02:30 would trigger
  ghost-agent --at 02:30 --dry-run -v

  # Inspect or reset the retraction slot
  ghost-agent history
  ghost-agent history clear
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
