package workspace

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/owner/tool.git", "tool"},
		{"https://github.com/owner/tool", "tool"},
		{"https://github.com/owner/tool/", "tool"},
		{"git@github.com:owner/tool.git", "tool"},
		{"tool", "tool"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestMemory_AcquireIsIsolated(t *testing.T) {
	m := NewMemory()
	m.AddRepo("r", map[string]string{"a.go": "package a\n"})

	ws, err := m.Acquire(context.Background(), "r")
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteFile("a.go", []byte("changed\n")))

	got, err := fs.ReadFile(ws.FS(), "a.go")
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(got))

	published, _ := m.File("r", "a.go")
	assert.Equal(t, "package a\n", published, "unpushed edits stay local")
}

func TestMemory_PushPublishesCommit(t *testing.T) {
	m := NewMemory()
	m.AddRepo("r", map[string]string{"a.go": "x\n"})
	ctx := context.Background()

	ws, err := m.Acquire(ctx, "r")
	require.NoError(t, err)
	require.NoError(t, ws.WriteFile("a.go", []byte("y\n")))
	require.NoError(t, ws.Commit(ctx, "chore: y"))
	require.NoError(t, ws.Push(ctx))
	require.NoError(t, ws.Close())

	published, _ := m.File("r", "a.go")
	assert.Equal(t, "y\n", published)
	assert.Equal(t, []Push{{Repository: "r", Message: "chore: y"}}, m.Pushes)
	assert.Equal(t, 0, m.Open())
}

func TestMemory_PushWithoutCommitFails(t *testing.T) {
	m := NewMemory()
	m.AddRepo("r", nil)
	ws, err := m.Acquire(context.Background(), "r")
	require.NoError(t, err)
	defer ws.Close()

	assert.Error(t, ws.Push(context.Background()))
}

func TestMemory_InjectedFailures(t *testing.T) {
	m := NewMemory()
	m.AddRepo("r", map[string]string{"a.go": "x\n"})
	boom := errors.New("boom")

	m.AcquireErr["r"] = boom
	_, err := m.Acquire(context.Background(), "r")
	assert.ErrorIs(t, err, boom)

	_, err = m.Acquire(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownRepository)

	delete(m.AcquireErr, "r")
	m.PushErr["r"] = boom
	ws, err := m.Acquire(context.Background(), "r")
	require.NoError(t, err)
	require.NoError(t, ws.Commit(context.Background(), "msg"))
	assert.ErrorIs(t, ws.Push(context.Background()), boom)
	assert.Equal(t, 1, m.Open())
	require.NoError(t, ws.Close())
	require.NoError(t, ws.Close(), "close is idempotent")
	assert.Equal(t, 0, m.Open())
}

func TestMemory_WriteAfterClose(t *testing.T) {
	m := NewMemory()
	m.AddRepo("r", nil)
	ws, err := m.Acquire(context.Background(), "r")
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	assert.ErrorIs(t, ws.WriteFile("a.go", nil), fs.ErrClosed)
}
