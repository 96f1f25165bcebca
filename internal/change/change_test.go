package change

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/ghost-agent/internal/history"
)

// mapFiles is a writable Files backed by fstest.MapFS.
type mapFiles struct {
	fsys     fstest.MapFS
	writes   int
	writeErr error
}

func newMapFiles(files map[string]string) *mapFiles {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content), Mode: 0644}
	}
	return &mapFiles{fsys: fsys}
}

func (m *mapFiles) FS() fs.FS { return m.fsys }

func (m *mapFiles) WriteFile(name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.fsys[name] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: 0644}
	return nil
}

func (m *mapFiles) read(t *testing.T, name string) string {
	t.Helper()
	data, err := fs.ReadFile(m.fsys, name)
	require.NoError(t, err)
	return string(data)
}

// fixedRand always returns the same index.
type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

var (
	goOpts = Options{
		Extensions: []string{".go", ".py", ".lua", ".txt", ".md"},
		IgnoreDirs: []string{"node_modules", "vendor"},
		Comments:   []string{"message"},
	}
	now = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
)

// ---------------------------------------------------------------------------
// Marker table
// ---------------------------------------------------------------------------

func TestCommentMarker(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		ok     bool
	}{
		{"main.py", "# ", true},
		{"deploy.sh", "# ", true},
		{"script.PL", "# ", true},
		{"main.go", "// ", true},
		{"App.TSX", "// ", true},
		{"lib/x.svelte", "// ", true},
		{"init.lua", "-- ", true},
		{"README.md", "", false},
		{"Makefile", "", false},
		{".bashrc", "", false},
		{"archive.tar.gz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, ok := CommentMarker(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.marker, marker)
		})
	}
}

// ---------------------------------------------------------------------------
// Candidates
// ---------------------------------------------------------------------------

func TestCandidates_FiltersAndPrunes(t *testing.T) {
	files := newMapFiles(map[string]string{
		"main.go":                  "",
		"README.md":                "",
		"image.png":                "",
		"pkg/util.go":              "",
		"pkg/deep/helper.py":       "",
		"vendor/dep/dep.go":        "",
		"node_modules/x/index.go":  "",
		"docs/vendor/notes.go":     "",
		".git/hooks/pre-commit.py": "",
		".bashrc":                  "",
	})

	got, err := Candidates(files.FS(), goOpts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"main.go",
		"pkg/deep/helper.py",
		"pkg/util.go",
	}, got)
}

func TestCandidates_ExtensionMatchIsExact(t *testing.T) {
	files := newMapFiles(map[string]string{"A.GO": "", "b.go": ""})

	got, err := Candidates(files.FS(), Options{Extensions: []string{".go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go"}, got)
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApply_Prefixes(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty file", "", "// message\n"},
		{"terminated last line", "package a\n", "package a\n\n// message\n"},
		{"unterminated last line", "package a", "package a\n\n// message\n"},
		{"blank last line", "package a\n\n", "package a\n\n\n// message\n"},
		{"whitespace last line", "package a\n  ", "package a\n  \n// message\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMapFiles(map[string]string{"main.go": tt.content})

			rec, err := Apply(files, goOpts, fixedRand(0), now)
			require.NoError(t, err)
			require.NotNil(t, rec)

			assert.Equal(t, tt.expected, files.read(t, "main.go"))
			assert.Equal(t, "main.go", rec.RelativePath)
			assert.Equal(t, "// message", rec.AddedContent)
			assert.Equal(t, now, rec.Timestamp)
			assert.Empty(t, rec.Repository)
		})
	}
}

func TestApply_ChoosesUniformlyByIndex(t *testing.T) {
	files := newMapFiles(map[string]string{
		"a.py":  "",
		"b.lua": "",
		"c.go":  "",
	})
	opts := goOpts
	opts.Comments = []string{"first", "second"}

	rec, err := Apply(files, opts, fixedRand(1), now)
	require.NoError(t, err)

	assert.Equal(t, "b.lua", rec.RelativePath)
	assert.Equal(t, "-- second", rec.AddedContent)
	assert.Equal(t, "-- second\n", files.read(t, "b.lua"))
}

func TestApply_NoEligibleFiles(t *testing.T) {
	files := newMapFiles(map[string]string{"image.png": "", "vendor/x.go": ""})

	rec, err := Apply(files, goOpts, fixedRand(0), now)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNoEligibleFiles)
	assert.Equal(t, 0, files.writes)
}

func TestApply_UnsupportedType(t *testing.T) {
	files := newMapFiles(map[string]string{"notes.txt": "hello\n"})

	rec, err := Apply(files, goOpts, fixedRand(0), now)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, "hello\n", files.read(t, "notes.txt"))
}

func TestApply_NoComments(t *testing.T) {
	files := newMapFiles(map[string]string{"a.go": ""})
	opts := goOpts
	opts.Comments = nil

	_, err := Apply(files, opts, fixedRand(0), now)
	assert.ErrorIs(t, err, ErrNoComments)
}

func TestApply_WriteFailure(t *testing.T) {
	files := newMapFiles(map[string]string{"a.go": ""})
	files.writeErr = errors.New("read-only")

	rec, err := Apply(files, goOpts, fixedRand(0), now)
	assert.Nil(t, rec)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Retract
// ---------------------------------------------------------------------------

func TestApplyThenRetractRestoresBytes(t *testing.T) {
	contents := []string{
		"",
		"\n",
		"package a\n",
		"package a",
		"package a\n\n",
		"package a\n\n\n",
		"package a\n  ",
		"package a\n\t\n",
		"line one\r\nline two\r\n",
		"x := 1 // trailing comment\n}",
	}

	for _, content := range contents {
		t.Run(content, func(t *testing.T) {
			files := newMapFiles(map[string]string{"main.go": content})

			rec, err := Apply(files, goOpts, fixedRand(0), now)
			require.NoError(t, err)

			require.NoError(t, Retract(files, *rec))
			assert.Equal(t, content, files.read(t, "main.go"))
		})
	}
}

func TestRetract_LegacyRecordUsesBlankLineRule(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"separated comment", "package a\n\n// message\n", "package a\n"},
		{"comment only", "// message\n", ""},
		{"no blank line before", "package a\n// message\n", "package a\n"},
		{"unterminated comment", "package a\n\n// message", "package a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMapFiles(map[string]string{"main.go": tt.content})
			rec := history.Record{RelativePath: "main.go", AddedContent: "// message"}

			require.NoError(t, Retract(files, rec))
			assert.Equal(t, tt.expected, files.read(t, "main.go"))
		})
	}
}

func TestRetract_NeverTouchesModifiedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"line appended after", "package a\n\n// message\nfunc x() {}\n"},
		{"comment edited", "package a\n\n// message, edited\n"},
		{"blank line appended", "package a\n\n// message\n\n"},
		{"different marker", "package a\n\n# message\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMapFiles(map[string]string{"main.go": tt.content})
			rec := history.Record{RelativePath: "main.go", AddedContent: "// message"}

			err := Retract(files, rec)
			assert.ErrorIs(t, err, ErrContentMismatch)
			assert.Equal(t, 0, files.writes)
			assert.Equal(t, tt.content, files.read(t, "main.go"))
		})
	}
}

func TestRetract_TrimmedComparison(t *testing.T) {
	files := newMapFiles(map[string]string{"main.go": "a\n\n   // message  \n"})
	rec := history.Record{RelativePath: "main.go", AddedContent: "// message"}

	require.NoError(t, Retract(files, rec))
	assert.Equal(t, "a\n", files.read(t, "main.go"))
}

func TestRetract_MissingFile(t *testing.T) {
	files := newMapFiles(map[string]string{"other.go": "x\n"})

	err := Retract(files, history.Record{RelativePath: "main.go", AddedContent: "// m"})
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestRetract_EscapingPath(t *testing.T) {
	files := newMapFiles(map[string]string{"main.go": "// m\n"})

	for _, p := range []string{"", "../main.go", "/etc/passwd"} {
		err := Retract(files, history.Record{RelativePath: p, AddedContent: "// m"})
		assert.ErrorIs(t, err, ErrFileMissing, "path %q", p)
	}
	assert.Equal(t, 0, files.writes)
}

func TestRetract_EmptyFile(t *testing.T) {
	files := newMapFiles(map[string]string{"main.go": ""})

	err := Retract(files, history.Record{RelativePath: "main.go", AddedContent: "// m"})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRetract_NestedPath(t *testing.T) {
	files := newMapFiles(map[string]string{"pkg/sub/a.py": "x = 1\n"})

	rec, err := Apply(files, goOpts, fixedRand(0), now)
	require.NoError(t, err)
	assert.Equal(t, "pkg/sub/a.py", rec.RelativePath)
	assert.Equal(t, "x = 1\n\n# message\n", files.read(t, "pkg/sub/a.py"))

	require.NoError(t, Retract(files, *rec))
	assert.Equal(t, "x = 1\n", files.read(t, "pkg/sub/a.py"))
}
