// Package workspace defines the checkout capability the session needs from a
// version-control backend, plus an in-memory backend for tests and dry runs
// of the scheduling logic.
package workspace

import (
	"context"
	"io/fs"
	"strings"
)

// Workspace is an isolated, writable checkout of one repository.
// Close disposes of it and must be called on every path.
type Workspace interface {
	Repository() string
	FS() fs.FS
	WriteFile(name string, data []byte) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
	Close() error
}

// Factory acquires workspaces.
type Factory interface {
	Acquire(ctx context.Context, repository string) (Workspace, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, repository string) (Workspace, error)

func (f FactoryFunc) Acquire(ctx context.Context, repository string) (Workspace, error) {
	return f(ctx, repository)
}

// Name returns the short name of a repository identifier:
// "https://github.com/owner/tool.git" -> "tool".
func Name(repository string) string {
	trimmed := strings.TrimRight(repository, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}
