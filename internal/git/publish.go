package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRepository is returned when the target directory is not a git
// checkout.
var ErrNotRepository = errors.New("not a git repository")

// PublishOptions describes a log file to commit back to the repository the
// agent runs from.
type PublishOptions struct {
	Dir       string
	File      string
	Message   string
	UserName  string
	UserEmail string
}

// PublishLog commits opts.File in opts.Dir and pushes it using whatever
// credentials that checkout already has.
func PublishLog(ctx context.Context, runner Runner, opts PublishOptions) error {
	if _, err := os.Stat(filepath.Join(opts.Dir, ".git")); err != nil {
		return fmt.Errorf("%w: %s", ErrNotRepository, opts.Dir)
	}

	steps := [][]string{}
	if opts.UserName != "" {
		steps = append(steps, []string{"config", "user.name", opts.UserName})
	}
	if opts.UserEmail != "" {
		steps = append(steps, []string{"config", "user.email", opts.UserEmail})
	}
	steps = append(steps,
		[]string{"add", opts.File},
		[]string{"commit", "-m", opts.Message},
		[]string{"push"},
	)

	for _, args := range steps {
		if _, err := runner.Run(ctx, opts.Dir, args...); err != nil {
			return fmt.Errorf("publish log: %w", err)
		}
	}
	return nil
}
