package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing/fstest"
)

// ErrUnknownRepository is returned when acquiring a repository the backend
// does not hold.
var ErrUnknownRepository = errors.New("unknown repository")

// Push records one pushed commit.
type Push struct {
	Repository string
	Message    string
}

// Memory is an in-memory Factory. Each Acquire hands out a private copy of
// the repository's files; Push publishes the copy back so later acquisitions
// see it.
type Memory struct {
	Repos map[string]fstest.MapFS

	// AcquireErr and PushErr inject failures per repository.
	AcquireErr map[string]error
	PushErr    map[string]error

	Pushes   []Push
	acquired int
	closed   int
}

var _ Factory = (*Memory)(nil)

// NewMemory returns an empty backend.
func NewMemory() *Memory {
	return &Memory{
		Repos:      map[string]fstest.MapFS{},
		AcquireErr: map[string]error{},
		PushErr:    map[string]error{},
	}
}

// AddRepo registers a repository with the given files.
func (m *Memory) AddRepo(repository string, files map[string]string) {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content), Mode: 0644}
	}
	m.Repos[repository] = fsys
}

// File returns the published content of a file.
func (m *Memory) File(repository, name string) (string, bool) {
	fsys, ok := m.Repos[repository]
	if !ok {
		return "", false
	}
	f, ok := fsys[name]
	if !ok {
		return "", false
	}
	return string(f.Data), true
}

// Open reports how many acquired workspaces have not been closed.
func (m *Memory) Open() int {
	return m.acquired - m.closed
}

// Acquire returns a private copy of the repository.
func (m *Memory) Acquire(ctx context.Context, repository string) (Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.AcquireErr[repository]; err != nil {
		return nil, err
	}
	src, ok := m.Repos[repository]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, repository)
	}
	m.acquired++
	return &memoryWorkspace{parent: m, repo: repository, files: cloneFS(src)}, nil
}

type memoryWorkspace struct {
	parent    *Memory
	repo      string
	files     fstest.MapFS
	committed fstest.MapFS
	message   string
	closed    bool
}

func (w *memoryWorkspace) Repository() string { return w.repo }

func (w *memoryWorkspace) FS() fs.FS { return w.files }

func (w *memoryWorkspace) WriteFile(name string, data []byte) error {
	if w.closed {
		return fs.ErrClosed
	}
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	mode := fs.FileMode(0644)
	if f, ok := w.files[name]; ok {
		mode = f.Mode
	}
	w.files[name] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: mode}
	return nil
}

func (w *memoryWorkspace) Commit(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.closed {
		return fs.ErrClosed
	}
	w.committed = cloneFS(w.files)
	w.message = message
	return nil
}

func (w *memoryWorkspace) Push(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.closed {
		return fs.ErrClosed
	}
	if err := w.parent.PushErr[w.repo]; err != nil {
		return err
	}
	if w.committed == nil {
		return errors.New("nothing committed")
	}
	w.parent.Repos[w.repo] = cloneFS(w.committed)
	w.parent.Pushes = append(w.parent.Pushes, Push{Repository: w.repo, Message: w.message})
	return nil
}

func (w *memoryWorkspace) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.parent.closed++
	return nil
}

func cloneFS(src fstest.MapFS) fstest.MapFS {
	dst := make(fstest.MapFS, len(src))
	for name, f := range src {
		cp := *f
		cp.Data = append([]byte(nil), f.Data...)
		dst[name] = &cp
	}
	return dst
}
