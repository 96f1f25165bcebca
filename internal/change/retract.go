package change

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/CodexForgeBR/ghost-agent/internal/history"
)

var (
	// ErrFileMissing means the recorded file no longer exists.
	ErrFileMissing = errors.New("recorded file not found")
	// ErrEmptyFile means the recorded file has no lines.
	ErrEmptyFile = errors.New("recorded file is empty")
	// ErrContentMismatch means the file's last line is not the recorded
	// comment, so it was modified since and must be left alone.
	ErrContentMismatch = errors.New("file modified since change was applied")
)

// Retract removes the comment described by rec from the workspace. It
// returns nil only when the file was rewritten.
func Retract(files Files, rec history.Record) error {
	name, ok := cleanRelative(rec.RelativePath)
	if !ok {
		return fmt.Errorf("%w: %q", ErrFileMissing, rec.RelativePath)
	}

	data, err := fs.ReadFile(files.FS(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileMissing, name)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	lines := splitLines(string(data))
	if len(lines) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	last := lines[len(lines)-1]
	if strings.TrimSpace(last) != strings.TrimSpace(rec.AddedContent) {
		return fmt.Errorf("%w: %s", ErrContentMismatch, name)
	}

	lines = lines[:len(lines)-1]
	rest := strings.Join(lines, "")
	switch {
	case rec.Separator != nil && strings.HasSuffix(rest, *rec.Separator):
		rest = strings.TrimSuffix(rest, *rec.Separator)
	case len(lines) > 0 && isBlank(lines[len(lines)-1]):
		// Records without a separator, or files edited above the comment.
		rest = strings.Join(lines[:len(lines)-1], "")
	}

	if err := files.WriteFile(name, []byte(rest)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// cleanRelative converts a recorded path to an fs.FS name, rejecting paths
// that escape the workspace.
func cleanRelative(rel string) (string, bool) {
	if rel == "" {
		return "", false
	}
	p := path.Clean(filepath.ToSlash(rel))
	if p == "." || !fs.ValidPath(p) {
		return "", false
	}
	return p, true
}
