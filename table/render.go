package table

import (
	"sort"
	"strings"
)

// Edit replaces Del bytes at Pos with Text. Del must not reach past the end
// of the line; Text may contain newlines.
type Edit struct {
	Pos  Position
	Del  int
	Text string
}

// Render applies edits to lines and returns the resulting lines. Every edit
// position refers to the original lines. Edits at the same position are
// applied in the order given.
func Render(lines []string, edits []Edit) []string {
	if len(edits) == 0 {
		return append([]string(nil), lines...)
	}

	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.less(sorted[j].Pos)
	})

	out := append([]string(nil), lines...)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		line := out[e.Pos.Line]
		out[e.Pos.Line] = line[:e.Pos.Col] + e.Text + line[e.Pos.Col+e.Del:]
	}

	return SplitLines(JoinLines(out))
}

// SplitLines splits a file's contents into lines without their terminators.
// A file ending in a newline yields a final empty line, so JoinLines gives
// back exactly the original text.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
