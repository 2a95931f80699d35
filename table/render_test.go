package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := map[string]struct {
		Lines []string
		Edits []Edit
		Want  []string
	}{
		"no edits": {
			Lines: []string{"a", "b"},
			Want:  []string{"a", "b"},
		},
		"replace": {
			Lines: []string{"i = {5, 5, 1};"},
			Edits: []Edit{{Pos: Position{0, 5}, Del: 4, Text: "7, 7"}},
			Want:  []string{"i = {7, 7, 1};"},
		},
		"positions refer to the original lines": {
			Lines: []string{"abcdef", "xyz"},
			Edits: []Edit{
				{Pos: Position{1, 3}, Text: "!"},
				{Pos: Position{0, 3}, Text: "\n"},
				{Pos: Position{0, 1}, Del: 2, Text: "Z"},
			},
			Want: []string{"aZ", "def", "xyz!"},
		},
		"same position keeps order": {
			Lines: []string{"{}"},
			Edits: []Edit{
				{Pos: Position{0, 1}, Text: "1"},
				{Pos: Position{0, 1}, Text: "2"},
			},
			Want: []string{"{12}"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			orig := append([]string(nil), test.Lines...)
			got := Render(test.Lines, test.Edits)
			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Fatalf("Render(): (-want, +got)\n%s", diff)
			}
			assert.Equal(t, orig, test.Lines, "input lines were modified")
		})
	}
}

func TestSplitJoinLines(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "a\nb\n\n"} {
		assert.Equal(t, text, JoinLines(SplitLines(text)))
	}
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\nb\n"))
}

func TestAddHeader(t *testing.T) {
	got := AddHeader([]string{"int x;"}, []string{"/* one */", "/* two */"})
	want := []string{"/* one */", "/* two */", "", "int x;"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AddHeader(): (-want, +got)\n%s", diff)
	}

	got = AddHeader([]string{"x"}, DefaultHeader)
	assert.Len(t, got, len(DefaultHeader)+2)
	assert.Equal(t, "/*", got[0])
	assert.Equal(t, "", got[len(DefaultHeader)])
}
