package change

import "strings"

// splitLines splits s after each "\n", keeping the terminators. The last
// element has no terminator when s does not end with one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// separatorFor returns the text to insert before a new comment line so that
// the comment starts its own paragraph.
func separatorFor(content string) string {
	lines := splitLines(content)
	if len(lines) == 0 {
		return ""
	}
	last := lines[len(lines)-1]
	if isBlank(last) || strings.HasSuffix(last, "\n") {
		return "\n"
	}
	return "\n\n"
}
