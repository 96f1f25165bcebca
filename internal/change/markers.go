package change

import (
	"path"
	"strings"
)

// Line-comment markers, including the trailing space.
const (
	HashMarker  = "# "
	SlashMarker = "// "
	DashMarker  = "-- "
)

var markersByExt = map[string]string{}

func init() {
	groups := map[string][]string{
		HashMarker: {".py", ".rb", ".sh", ".bash", ".zsh", ".pl"},
		SlashMarker: {
			".js", ".ts", ".jsx", ".tsx", ".java", ".c", ".cpp", ".cc", ".cxx",
			".h", ".hpp", ".cs", ".go", ".rs", ".kt", ".kts", ".swift", ".dart",
			".php", ".groovy", ".vue", ".svelte",
		},
		DashMarker: {".lua"},
	}
	for marker, exts := range groups {
		for _, ext := range exts {
			markersByExt[ext] = marker
		}
	}
}

// CommentMarker returns the line-comment marker for name's extension.
// Lookup is case-insensitive. ok is false for unlisted extensions.
func CommentMarker(name string) (marker string, ok bool) {
	marker, ok = markersByExt[strings.ToLower(extension(name))]
	return marker, ok
}

// extension returns the final extension of name, ignoring leading dots so
// that dotfiles such as ".bashrc" have none.
func extension(name string) string {
	base := strings.TrimLeft(path.Base(name), ".")
	return path.Ext(base)
}
