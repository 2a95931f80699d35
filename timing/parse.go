package timing

import (
	"strconv"
	"strings"

	"github.com/zxpp/z80meta/opcode"
	"github.com/zxpp/z80meta/progress"
)

// ProgressEvery is the number of database lines per progress dot.
const ProgressEvery = 20

// Parse reads the timing database. Lines that don't fit the column layout
// are returned as LineErrors and skipped; a line whose opcode descriptor
// can't be parsed, or two lines describing the same opcode, fail the whole
// load.
func Parse(lines []string, p *progress.Dots) (*Database, []*LineError, error) {
	db := &Database{}
	var skipped []*LineError

	for i, line := range lines {
		p.Tick()

		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, lerr := parseLine(line)
		if lerr != nil {
			lerr.Line = i + 1
			lerr.Text = line
			skipped = append(skipped, lerr)
			continue
		}
		rec.Line = i + 1

		if err := db.add(rec); err != nil {
			p.Done()
			return nil, skipped, err
		}
	}
	p.Done()

	return db, skipped, nil
}

// parseLine splits one database line into its columns:
//
//	descriptor taken notTaken (tag duration){7} mnemonic...
func parseLine(line string) (*Record, *LineError) {
	sc := fieldScanner{s: line}
	rec := &Record{}

	desc, ok := sc.next()
	if !ok {
		return nil, &LineError{Kind: MissingField, Field: 0}
	}
	for _, r := range desc {
		if !isWordRune(r) {
			return nil, &LineError{Kind: BadDescriptorToken, Field: 0, Token: desc}
		}
	}
	rec.Opcode = desc

	var lerr *LineError
	if rec.Taken, lerr = sc.number(); lerr != nil {
		return nil, lerr
	}
	if rec.NotTaken, lerr = sc.number(); lerr != nil {
		return nil, lerr
	}

	for i := range rec.Cycles {
		tag, ok := sc.next()
		if !ok {
			return nil, &LineError{Kind: MissingField, Field: sc.field}
		}
		ct, ok := ParseCycleType(tag)
		if !ok {
			return nil, &LineError{Kind: UnknownCycleType, Field: sc.field - 1, Token: tag}
		}
		dur, lerr := sc.number()
		if lerr != nil {
			return nil, lerr
		}
		rec.Cycles[i] = Cycle{Type: ct, Duration: dur}
	}
	rec.ValidCycles = CountValidCycles(rec.Cycles)

	rec.Mnemonic = strings.TrimSpace(sc.rest())
	if rec.Mnemonic == "" {
		return nil, &LineError{Kind: MissingMnemonic, Field: sc.field}
	}

	return rec, nil
}

// fieldScanner walks whitespace-separated fields of a line while keeping
// hold of whatever text follows the last field it returned.
type fieldScanner struct {
	s     string
	pos   int
	field int
}

func (sc *fieldScanner) next() (string, bool) {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
	start := sc.pos
	for sc.pos < len(sc.s) && !isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
	if start == sc.pos {
		return "", false
	}
	sc.field++
	return sc.s[start:sc.pos], true
}

func (sc *fieldScanner) number() (int, *LineError) {
	tok, ok := sc.next()
	if !ok {
		return 0, &LineError{Kind: MissingField, Field: sc.field}
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, &LineError{Kind: BadNumber, Field: sc.field - 1, Token: tok}
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &LineError{Kind: BadNumber, Field: sc.field - 1, Token: tok}
	}
	return n, nil
}

func (sc *fieldScanner) rest() string {
	return sc.s[sc.pos:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// Descriptor parses and reduces a record's opcode descriptor.
func (rec *Record) Descriptor() (*opcode.Descriptor, opcode.Triple, error) {
	d, err := opcode.ParseDescriptor(rec.Opcode)
	if err != nil {
		return nil, opcode.Triple{}, err
	}
	t, err := d.Triple()
	if err != nil {
		return nil, opcode.Triple{}, err
	}
	return d, t, nil
}
