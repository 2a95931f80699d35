package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zxpp/z80meta/opcode"
	"github.com/zxpp/z80meta/progress"
	"github.com/zxpp/z80meta/timing"
)

// Matcher finds the timing record for a canonical opcode triple.
// *timing.Database is the usual implementation.
type Matcher interface {
	Find(t opcode.Triple) (*timing.Record, error)
}

// Format controls how injected fields are spelled.
type Format struct {
	// CycleTypePrefix qualifies each cycle type name, e.g.
	// "MachineCycleType::" gives "MachineCycleType::M1R".
	CycleTypePrefix string
}

var DefaultFormat = Format{CycleTypePrefix: "MachineCycleType::"}

// InjectTiming appends the cycle count, cycle types and cycle durations of
// the matching timing record to every entry. An entry without a key, or
// whose key has no record, fails the whole pass.
func InjectTiming(lines []string, m Matcher, f Format, p *progress.Dots) ([]string, error) {
	layout, err := Scan(lines, p)
	if err != nil {
		return nil, err
	}

	var edits []Edit
	lk := lookup{m: m}
	for _, e := range layout.Entries {
		rec, err := lk.find(e)
		if err != nil {
			return nil, err
		}
		edits = append(edits, Edit{Pos: e.Splice, Text: f.timingFields(rec, e.Empty)})
	}

	return Render(lines, edits), nil
}

func (f Format) timingFields(rec *timing.Record, empty bool) string {
	types := make([]string, len(rec.Cycles))
	durations := make([]string, len(rec.Cycles))
	for i, c := range rec.Cycles {
		types[i] = f.CycleTypePrefix + c.Type.String()
		durations[i] = strconv.Itoa(c.Duration)
	}

	var buf strings.Builder
	if !empty {
		buf.WriteString(",")
	}
	fmt.Fprintf(&buf, "\n        %d, { %s },", rec.ValidCycles, strings.Join(types, ", "))
	fmt.Fprintf(&buf, "\n        { %s }\n   ", strings.Join(durations, ", "))
	return buf.String()
}

// InjectMnemonics appends a string field naming each entry's instruction.
// The name comes from the comment above the entry; for an entry without one
// it falls back to the mnemonic in the timing database, when m is not nil.
func InjectMnemonics(lines []string, m Matcher) ([]string, error) {
	layout, err := Scan(lines, nil)
	if err != nil {
		return nil, err
	}

	var edits []Edit
	lk := lookup{m: m}
	for _, e := range layout.Entries {
		var mnemonic string
		if e.Comment != nil {
			mnemonic = e.Comment.Text
		} else if m != nil {
			rec, err := lk.find(e)
			if err != nil {
				return nil, err
			}
			mnemonic = rec.Mnemonic
		}
		if mnemonic == "" {
			return nil, &EntryError{Line: e.Start + 1, Err: ErrNoMnemonic}
		}

		text := "\n        " + strconv.Quote(mnemonic)
		if !e.Empty {
			text = "," + text
		}
		edits = append(edits, Edit{Pos: e.Splice, Text: text})
	}

	return Render(lines, edits), nil
}

// lookup resolves entries to records, reusing the last result while
// consecutive entries share a key.
type lookup struct {
	m   Matcher
	key *KeyLine
	rec *timing.Record
}

func (lk *lookup) find(e *Entry) (*timing.Record, error) {
	if e.Key == nil {
		return nil, &EntryError{Line: e.Start + 1, Err: ErrNoKey}
	}
	if e.Key == lk.key {
		return lk.rec, nil
	}

	t, err := opcode.KeyTriple(e.Key.Raw)
	if err != nil {
		return nil, &EntryError{Line: e.Key.Line + 1, Err: err}
	}
	rec, err := lk.m.Find(t)
	if err == nil && rec == nil {
		err = &timing.NotFoundError{Triple: t}
	}
	if err != nil {
		return nil, &EntryError{Line: e.Start + 1, Err: err}
	}

	lk.key, lk.rec = e.Key, rec
	return rec, nil
}
