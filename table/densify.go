package table

import (
	"fmt"
	"sort"

	"github.com/zxpp/z80meta/opcode"
)

// DenseMap records which line each dense opcode index came from during one
// Densify run.
type DenseMap struct {
	lines map[int]int
}

func (dm *DenseMap) Len() int {
	return len(dm.lines)
}

// Line returns the 1-based line of the key that was given index, if any.
func (dm *DenseMap) Line(index int) (int, bool) {
	line, ok := dm.lines[index]
	return line, ok
}

// Indexes returns the assigned indexes in ascending order.
func (dm *DenseMap) Indexes() []int {
	ret := make([]int, 0, len(dm.lines))
	for idx := range dm.lines {
		ret = append(ret, idx)
	}
	sort.Ints(ret)
	return ret
}

// Densify replaces every three-byte opcode key with the single integer the
// emulator uses to index its instruction array:
//
//	opcode oc = {0,0xCB,0x07};  becomes  int oc = 1031;
//	oc = {0,0,0x3E};            becomes  oc = 62;
//
// Indentation and anything after the statement are kept. Two keys sharing
// an index abort the run, since one would silently overwrite the other.
func Densify(lines []string) ([]string, *DenseMap, error) {
	layout, err := Scan(lines, nil)
	if err != nil {
		return nil, nil, err
	}

	dm := &DenseMap{lines: make(map[int]int)}
	var edits []Edit

	for _, key := range layout.Keys {
		t, err := opcode.KeyTriple(key.Raw)
		if err != nil {
			return nil, nil, &EntryError{Line: key.Line + 1, Err: err}
		}
		idx := t.Index()
		if prev, ok := dm.lines[idx]; ok {
			return nil, nil, &CollisionError{Index: idx, FirstLine: prev, SecondLine: key.Line + 1}
		}
		dm.lines[idx] = key.Line + 1

		stmt := fmt.Sprintf("oc = %d;", idx)
		if key.Decl {
			stmt = "int " + stmt
		}
		edits = append(edits, Edit{
			Pos:  Position{key.Line, key.Start},
			Del:  key.End - key.Start,
			Text: stmt,
		})
	}

	return Render(lines, edits), dm, nil
}
