package git

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/CodexForgeBR/ghost-agent/internal/workspace"
)

// Factory clones repositories into temporary directories.
type Factory struct {
	Runner Runner
	Token  string

	// UserName and UserEmail set the commit identity of every clone.
	UserName  string
	UserEmail string

	// BaseDir holds the clones; empty means the system temp dir.
	BaseDir string

	// NoPush turns Push into a no-op.
	NoPush bool

	Retry RetryConfig
}

var _ workspace.Factory = (*Factory)(nil)

// Acquire clones repository into a fresh directory. The directory is
// removed again if any setup step fails.
func (f *Factory) Acquire(ctx context.Context, repository string) (workspace.Workspace, error) {
	if f.BaseDir != "" {
		if err := os.MkdirAll(f.BaseDir, 0755); err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(f.BaseDir, "ghost-"+workspace.Name(repository)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create clone dir: %w", err)
	}

	ws, err := f.setup(ctx, repository, dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return ws, nil
}

func (f *Factory) setup(ctx context.Context, repository, dir string) (*Workspace, error) {
	remote, err := AuthURL(repository, f.Token)
	if err != nil {
		return nil, err
	}

	err = RetryWithBackoff(ctx, f.Retry, func() error {
		// A failed clone may leave partial contents behind.
		if err := resetDir(dir); err != nil {
			return err
		}
		_, err := f.Runner.Run(ctx, dir, "clone", remote, ".")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %s", workspace.Name(repository), Redact(err.Error(), f.Token))
	}

	if f.UserName != "" {
		if _, err := f.Runner.Run(ctx, dir, "config", "user.name", f.UserName); err != nil {
			return nil, err
		}
	}
	if f.UserEmail != "" {
		if _, err := f.Runner.Run(ctx, dir, "config", "user.email", f.UserEmail); err != nil {
			return nil, err
		}
	}

	return &Workspace{repo: repository, dir: dir, runner: f.Runner, noPush: f.NoPush}, nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Workspace is a clone on local disk.
type Workspace struct {
	repo   string
	dir    string
	runner Runner
	noPush bool
}

var _ workspace.Workspace = (*Workspace)(nil)

func (w *Workspace) Repository() string { return w.repo }

// Dir returns the clone's root directory.
func (w *Workspace) Dir() string { return w.dir }

func (w *Workspace) FS() fs.FS { return os.DirFS(w.dir) }

// WriteFile replaces the content of name, keeping its permissions.
func (w *Workspace) WriteFile(name string, data []byte) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	full := filepath.Join(w.dir, filepath.FromSlash(name))

	mode := os.FileMode(0644)
	if info, err := os.Stat(full); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(full, data, mode)
}

// Commit stages every change and commits it.
func (w *Workspace) Commit(ctx context.Context, message string) error {
	if _, err := w.runner.Run(ctx, w.dir, "add", "-A"); err != nil {
		return err
	}
	_, err := w.runner.Run(ctx, w.dir, "commit", "-m", message)
	return err
}

func (w *Workspace) Push(ctx context.Context) error {
	if w.noPush {
		return nil
	}
	_, err := w.runner.Run(ctx, w.dir, "push")
	return err
}

// Close deletes the clone.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}
