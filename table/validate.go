package table

import (
	"fmt"
)

// MismatchKind says which of the two authored T-state fields disagreed with
// the database.
type MismatchKind uint8

const (
	TakenMismatch    MismatchKind = iota + 1 // the jump field
	NotTakenMismatch                         // the no-jump field
)

func (k MismatchKind) String() string {
	switch k {
	case TakenMismatch:
		return "jump"
	case NotTakenMismatch:
		return "no-jump"
	default:
		return fmt.Sprintf("MismatchKind(%d)", uint8(k))
	}
}

type TimingMismatch struct {
	Line int // 1-based
	Kind MismatchKind

	// NoJump and Jump are the entry's values when the check ran.
	NoJump, Jump int

	// Want is the value the database expects in the mismatched field.
	Want int
}

type TimingReport struct {
	Checked    int
	Mismatches []TimingMismatch

	// Fixed counts the entries rewritten in fix mode.
	Fixed int
}

func (r *TimingReport) OK() bool {
	return len(r.Mismatches) == 0
}

// CheckTiming compares the not-taken and taken T-state fields at the front
// of each entry with the timing database. Entries that don't start with two
// integers are left alone.
//
// With fix set, mismatched fields are corrected and the corrected lines are
// returned; the not-taken check then runs against the result of the taken
// fix, so checking the returned lines again reports nothing. Without fix the
// returned lines are the input lines.
func CheckTiming(lines []string, m Matcher, fix bool) (*TimingReport, []string, error) {
	layout, err := Scan(lines, nil)
	if err != nil {
		return nil, nil, err
	}

	report := &TimingReport{}
	var edits []Edit
	lk := lookup{m: m}

	for _, e := range layout.Entries {
		if len(e.Fields) < 2 {
			continue
		}
		rec, err := lk.find(e)
		if err != nil {
			return nil, nil, err
		}
		report.Checked++

		noJump, jump := e.Fields[0].Value, e.Fields[1].Value
		line := e.Start + 1
		changed := false

		if jump != rec.Taken {
			report.Mismatches = append(report.Mismatches, TimingMismatch{
				Line: line, Kind: TakenMismatch, NoJump: noJump, Jump: jump, Want: rec.Taken,
			})
			if fix {
				if noJump == jump {
					noJump = rec.Taken
				}
				jump = rec.Taken
				changed = true
			}
		}

		if rec.NotTaken == 0 {
			// No distinct not-taken path: both fields should hold the
			// taken value.
			if noJump != 0 && jump != noJump {
				report.Mismatches = append(report.Mismatches, TimingMismatch{
					Line: line, Kind: NotTakenMismatch, NoJump: noJump, Jump: jump, Want: rec.Taken,
				})
				if fix {
					noJump = rec.Taken
					changed = true
				}
			}
		} else if noJump != rec.NotTaken {
			report.Mismatches = append(report.Mismatches, TimingMismatch{
				Line: line, Kind: NotTakenMismatch, NoJump: noJump, Jump: jump, Want: rec.NotTaken,
			})
			if fix {
				noJump = rec.NotTaken
				changed = true
			}
		}

		if changed {
			report.Fixed++
			first, second := e.Fields[0], e.Fields[1]
			edits = append(edits, Edit{
				Pos:  first.Pos,
				Del:  second.Pos.Col + second.Len - first.Pos.Col,
				Text: fmt.Sprintf("%d, %d", noJump, jump),
			})
		}
	}

	if !fix {
		return report, lines, nil
	}
	return report, Render(lines, edits), nil
}
