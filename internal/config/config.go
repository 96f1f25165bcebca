// Package config defines the ghost-agent configuration model and default
// values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < config file < GHOST_* environment variables <
// CLI flag overrides.
package config

import "github.com/CodexForgeBR/ghost-agent/internal/schedule"

// DefaultFile is the config file read when no path is given.
const DefaultFile = "config.json"

// RequiredKeys must be present in the config file. Their values may be
// empty lists, but the keys themselves cannot be missing.
var RequiredKeys = []string{
	"schedule.blocks",
	"repos",
	"extensions",
	"ignore_dirs",
	"comments",
	"commit_messages",
}

// Schedule wraps the block list so the file layout stays
// {"schedule": {"blocks": [...]}}.
type Schedule struct {
	Blocks []schedule.Block `mapstructure:"blocks" json:"blocks" yaml:"blocks" toml:"blocks" validate:"dive"`
}

// Config holds every configuration field for the ghost-agent CLI.
type Config struct {
	// Activity definition.
	Schedule       Schedule `mapstructure:"schedule" json:"schedule" yaml:"schedule" toml:"schedule"`
	Repos          []string `mapstructure:"repos" json:"repos" yaml:"repos" toml:"repos" validate:"dive,required"`
	Extensions     []string `mapstructure:"extensions" json:"extensions" yaml:"extensions" toml:"extensions" validate:"dive,startswith=."`
	IgnoreDirs     []string `mapstructure:"ignore_dirs" json:"ignore_dirs" yaml:"ignore_dirs" toml:"ignore_dirs"`
	Comments       []string `mapstructure:"comments" json:"comments" yaml:"comments" toml:"comments" validate:"min=1,dive,required,singleline"`
	CommitMessages []string `mapstructure:"commit_messages" json:"commit_messages" yaml:"commit_messages" toml:"commit_messages" validate:"min=1,dive,required"`

	// File paths.
	HistoryFile string `mapstructure:"history_file" json:"history_file" yaml:"history_file" toml:"history_file" validate:"required"`
	LogFile     string `mapstructure:"log_file" json:"log_file" yaml:"log_file" toml:"log_file"`
	WorkDir     string `mapstructure:"work_dir" json:"work_dir,omitempty" yaml:"work_dir,omitempty" toml:"work_dir,omitempty"`

	Timezone string `mapstructure:"timezone" json:"timezone" yaml:"timezone" toml:"timezone" validate:"omitempty,timezone"`
	TokenEnv string `mapstructure:"token_env" json:"token_env" yaml:"token_env" toml:"token_env" validate:"required"`

	// Session behaviour.
	UndoProbability float64 `mapstructure:"undo_probability" json:"undo_probability" yaml:"undo_probability" toml:"undo_probability" validate:"min=0,max=1"`
	PauseMinSeconds int     `mapstructure:"pause_min_seconds" json:"pause_min_seconds" yaml:"pause_min_seconds" toml:"pause_min_seconds" validate:"min=0"`
	PauseMaxSeconds int     `mapstructure:"pause_max_seconds" json:"pause_max_seconds" yaml:"pause_max_seconds" toml:"pause_max_seconds" validate:"gtefield=PauseMinSeconds"`
	MaxAttempts     int     `mapstructure:"max_attempts" json:"max_attempts" yaml:"max_attempts" toml:"max_attempts" validate:"min=0"`
	CloneRetries    int     `mapstructure:"clone_retries" json:"clone_retries" yaml:"clone_retries" toml:"clone_retries" validate:"min=0,max=10"`

	// Git identity and messages.
	GitUserName    string `mapstructure:"git_user_name" json:"git_user_name" yaml:"git_user_name" toml:"git_user_name" validate:"required"`
	GitUserEmail   string `mapstructure:"git_user_email" json:"git_user_email" yaml:"git_user_email" toml:"git_user_email" validate:"required"`
	CleanupMessage string `mapstructure:"cleanup_message" json:"cleanup_message" yaml:"cleanup_message" toml:"cleanup_message" validate:"required"`

	Verbose bool `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`

	// ConfigFile records where the file layer came from. Not loaded from
	// any source.
	ConfigFile string `mapstructure:"-" json:"-" yaml:"-" toml:"-"`
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		HistoryFile:     "history.json",
		LogFile:         "ghost_log.txt",
		Timezone:        "Asia/Kolkata",
		TokenEnv:        "GH_PAT",
		UndoProbability: 0.3,
		PauseMinSeconds: 2,
		PauseMaxSeconds: 8,
		CloneRetries:    2,
		GitUserName:     "Ghost Agent",
		GitUserEmail:    "agent@ghost.local",
		CleanupMessage:  "refactor: cleanup",
	}
}

// AttemptBudget is the number of loop iterations a session may spend to
// reach target operations.
func (c *Config) AttemptBudget(target int) int {
	if c.MaxAttempts > 0 {
		return c.MaxAttempts
	}
	return 3 * target
}
