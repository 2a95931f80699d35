package table

import (
	"sort"
	"strings"
)

type OperandMismatch struct {
	Line int // 1-based
	Want int // from the comment
	Got  int // from the entry
}

type OperandReport struct {
	Checked    int
	Mismatches []OperandMismatch
}

func (r *OperandReport) OK() bool {
	return len(r.Mismatches) == 0
}

// CheckOperandBytes compares the operand byte count of each entry, its third
// leading field, with the count implied by the mnemonic in the nearest
// comment above it. Comments that don't look like a mnemonic leave the
// previous expectation in place.
func CheckOperandBytes(lines []string) (*OperandReport, error) {
	layout, err := Scan(lines, nil)
	if err != nil {
		return nil, err
	}

	// Walk comments and entries together in line order.
	type event struct {
		line    int
		comment *Comment
		entry   *Entry
	}
	events := make([]event, 0, len(layout.Comments)+len(layout.Entries))
	for _, c := range layout.Comments {
		events = append(events, event{line: c.Line, comment: c})
	}
	for _, e := range layout.Entries {
		events = append(events, event{line: e.Start, entry: e})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].line < events[j].line
	})

	report := &OperandReport{}
	want := 0
	for _, ev := range events {
		if ev.comment != nil {
			if n, ok := OperandBytes(ev.comment.Text); ok {
				want = n
			}
			continue
		}
		if len(ev.entry.Fields) < 3 {
			continue
		}
		report.Checked++
		if got := ev.entry.Fields[2].Value; got != want {
			report.Mismatches = append(report.Mismatches, OperandMismatch{
				Line: ev.entry.Start + 1,
				Want: want,
				Got:  got,
			})
		}
	}

	return report, nil
}

// OperandBytes works out how many immediate bytes follow the opcode of the
// instruction written in a mnemonic comment such as "LD (IX+d),n". Only the
// operand placeholders matter: nn is a two byte immediate, n a one byte
// immediate and d a one byte displacement. ok is false when the text isn't
// a mnemonic.
func OperandBytes(comment string) (n int, ok bool) {
	operands, ok := splitMnemonic(comment)
	if !ok {
		return 0, false
	}

	var has = map[string]bool{}
	for _, op := range operands {
		has[placeholders(op)] = true
	}
	switch {
	case has["nn"]:
		return 2, true
	case has["n"] && has["d"]:
		return 2, true
	case has["n"] || has["d"]:
		return 1, true
	default:
		return 0, true
	}
}

// splitMnemonic recognises
//
//	WORD [blank OPERAND] [, OPERAND]
//
// where WORD is made of word characters and an operand of word characters,
// blanks and ( ) - > + '. Text after the second operand is ignored.
func splitMnemonic(s string) ([2]string, bool) {
	var operands [2]string
	c := cursor{s: s}
	c.skipBlanks()

	if c.span(isIdentChar) == "" {
		return operands, false
	}

	// The first operand must start with a blank and hold something more
	// than that one blank.
	if c.pos < len(s) && isBlank(s[c.pos]) {
		save := c.pos
		op := c.span(isOperandChar)
		if len(op) >= 2 {
			operands[0] = op
		} else {
			c.pos = save
		}
	}

	if c.char(',') {
		operands[1] = c.span(isOperandChar)
	}

	return operands, true
}

// placeholders keeps only the n and d characters of an operand, so
// "(IX+d)" becomes "d" and "(nn)" becomes "nn".
func placeholders(op string) string {
	return strings.Map(func(r rune) rune {
		if r == 'n' || r == 'd' {
			return r
		}
		return -1
	}, op)
}

func isOperandChar(c byte) bool {
	if isIdentChar(c) || isBlank(c) {
		return true
	}
	switch c {
	case '(', ')', '-', '>', '+', '\'':
		return true
	}
	return false
}
