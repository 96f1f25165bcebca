// Package change appends comment lines to repository files and removes them
// again.
//
// Apply and Retract are inverses: retracting a change immediately after
// applying it restores the file byte for byte. Retract refuses to touch a
// file whose last line is not the recorded comment.
package change

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/CodexForgeBR/ghost-agent/internal/history"
)

var (
	// ErrNoEligibleFiles means no file matched the extension allowlist.
	ErrNoEligibleFiles = errors.New("no eligible files")
	// ErrUnsupportedType means the chosen file has no known comment marker.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNoComments means the comment pool is empty.
	ErrNoComments = errors.New("no comments configured")
)

// Files is the part of a workspace the applicator and retractor need.
type Files interface {
	FS() fs.FS
	WriteFile(name string, data []byte) error
}

// Rand picks uniformly among n choices.
type Rand interface {
	IntN(n int) int
}

// Options selects which files are eligible and what may be written.
type Options struct {
	Extensions []string
	IgnoreDirs []string
	Comments   []string
}

// Candidates lists eligible files in lexical order. Directories named in
// IgnoreDirs are pruned, as is any .git directory.
func Candidates(fsys fs.FS, opts Options) ([]string, error) {
	ignore := make(map[string]bool, len(opts.IgnoreDirs)+1)
	ignore[".git"] = true
	for _, d := range opts.IgnoreDirs {
		ignore[d] = true
	}
	allowed := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[ext] = true
	}

	var out []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && ignore[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && allowed[extension(p)] {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace: %w", err)
	}
	return out, nil
}

// Apply appends a comment line to one randomly chosen eligible file and
// returns the record needed to undo it. The record's Repository is left
// empty for the caller to fill in.
func Apply(files Files, opts Options, rng Rand, now time.Time) (*history.Record, error) {
	candidates, err := Candidates(files.FS(), opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoEligibleFiles
	}

	target := candidates[rng.IntN(len(candidates))]
	marker, ok := CommentMarker(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path.Base(target))
	}
	if len(opts.Comments) == 0 {
		return nil, ErrNoComments
	}
	message := opts.Comments[rng.IntN(len(opts.Comments))]

	data, err := fs.ReadFile(files.FS(), target)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	content := string(data)

	separator := separatorFor(content)
	added := marker + message
	updated := content + separator + added + "\n"

	if err := files.WriteFile(target, []byte(updated)); err != nil {
		return nil, fmt.Errorf("write %s: %w", target, err)
	}

	return &history.Record{
		RelativePath: target,
		AddedContent: added,
		Timestamp:    now,
		Separator:    &separator,
	}, nil
}
