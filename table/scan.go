// Package table reads and rewrites the hand-written instruction table: a C++
// source file made of opcode key lines such as
//
//	opcode oc = {0,0,0x3E};
//
// each followed by a brace-delimited instruction value block
//
//	Instruction i = {7, 7, 1, [](...) { ... }};
//
// that may span many lines.
//
// Every pass works the same way. Scan walks the lines once and produces an
// immutable Layout describing where each key and entry is; the pass then
// turns the entries it cares about into Edits, and Render applies the edits
// to produce the new lines. Nothing outside an edit's span is changed.
package table

import (
	"strconv"
	"strings"

	"github.com/zxpp/z80meta/opcode"
	"github.com/zxpp/z80meta/progress"
)

// ProgressEvery is the number of table lines per progress dot.
const ProgressEvery = 175

// Position is a byte offset within a line. Both fields are zero-based.
type Position struct {
	Line int
	Col  int
}

func (p Position) less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// KeyLine is an opcode key statement.
type KeyLine struct {
	Line int

	// Raw is the key exactly as written: two prefix bytes (or zero) and
	// the base opcode byte.
	Raw [3]byte

	// Decl is set for the "opcode oc = ..." and "int oc = ..." forms that
	// declare the variable, as opposed to a plain "oc = ..." assignment.
	Decl bool

	// Dense is set when the key was written as a dense index, as Densify
	// leaves it. Raw is then derived from the index.
	Dense bool

	// Start and End delimit the statement within the line, including the
	// terminating semicolon when there is one.
	Start, End int
}

// Comment is a line comment found outside any entry.
type Comment struct {
	Line int
	Text string // with the slashes and surrounding blanks removed
}

// Field is one of the leading integer fields of an entry's value block.
type Field struct {
	Value int
	Pos   Position
	Len   int
}

// Entry is one instruction value block.
type Entry struct {
	// Key is the most recent key line before this entry, or nil if there
	// was none.
	Key *KeyLine

	// Comment is the nearest comment before the entry, or nil.
	Comment *Comment

	// Start and End are the first and last lines of the entry.
	Start, End int

	// Open and Close are the braces delimiting the value block.
	Open, Close Position

	// Splice is where new trailing fields go: just after the last
	// character of the value block that is neither blank nor part of a
	// comment. Empty is set when there is no such character, so the
	// block holds nothing yet.
	Splice Position
	Empty  bool

	// Fields are the integers at the front of the value block, in order;
	// for an authored entry these are the not-taken and taken T-states
	// and the operand byte count.
	Fields []Field
}

// Layout is the result of scanning a table.
type Layout struct {
	Keys     []*KeyLine
	Comments []*Comment
	Entries  []*Entry
}

type scanState int

const (
	awaitingKey scanState = iota
	awaitingValueOpen
	insideValue
)

type scanner struct {
	state   scanState
	key     *KeyLine
	comment *Comment

	// Set while insideValue.
	entry        *Entry
	depth        int
	lastSig      Position
	blockComment bool

	layout Layout
}

// Scan walks the table once, driving a small state machine:
//
//	awaitingKey       --key line-->        awaitingValueOpen
//	awaitingValueOpen --key line-->        awaitingValueOpen (the later key wins)
//	awaiting*         --value open-->      insideValue(depth)
//	insideValue       --depth back to 0--> awaitingKey
//
// An entry is governed by the most recent key line, which stays current
// until the next one. Key lines and value-open lines are only recognised
// outside entries, as is the comment carried into the next entry.
func Scan(lines []string, p *progress.Dots) (*Layout, error) {
	s := &scanner{}

	for i, line := range lines {
		p.Tick()

		if s.state == insideValue {
			s.scanBlock(i, line, 0)
			continue
		}

		key, err := parseKeyLine(line)
		if err != nil {
			p.Done()
			return nil, &EntryError{Line: i + 1, Err: err}
		}
		if key != nil {
			key.Line = i
			s.layout.Keys = append(s.layout.Keys, key)
			s.key = key
			s.state = awaitingValueOpen
			continue
		}

		if open, ok := matchValueOpen(line); ok {
			s.entry = &Entry{
				Key:     s.key,
				Comment: s.comment,
				Start:   i,
			}
			s.depth = 0
			s.blockComment = false
			s.state = insideValue
			s.scanBlock(i, line, open)
			continue
		}

		if text, ok := parseComment(line); ok {
			c := &Comment{Line: i, Text: text}
			s.layout.Comments = append(s.layout.Comments, c)
			s.comment = c
		}
	}
	p.Done()

	if s.state == insideValue {
		return nil, &UnterminatedError{Line: s.entry.Start + 1}
	}

	return &s.layout, nil
}

// scanBlock tracks brace depth through one line of a value block, starting
// at column from. Braces inside string and character literals and inside
// comments don't count.
func (s *scanner) scanBlock(line int, text string, from int) {
	inString, inChar := false, false

	for col := from; col < len(text); col++ {
		c := text[col]

		switch {
		case s.blockComment:
			if c == '*' && col+1 < len(text) && text[col+1] == '/' {
				s.blockComment = false
				col++
			}
			continue
		case inString || inChar:
			if c == '\\' {
				col++
			} else if (inString && c == '"') || (inChar && c == '\'') {
				inString, inChar = false, false
			}
			s.lastSig = Position{line, col + 1}
			continue
		}

		switch c {
		case ' ', '\t', '\r', '\v', '\f':
			continue
		case '/':
			if col+1 < len(text) && text[col+1] == '/' {
				return
			}
			if col+1 < len(text) && text[col+1] == '*' {
				s.blockComment = true
				col++
				continue
			}
		case '"':
			inString = true
		case '\'':
			inChar = true
		case '{':
			s.depth++
			if s.depth == 1 {
				s.entry.Open = Position{line, col}
				s.entry.Fields = parseFields(line, text, col+1)
			}
		case '}':
			s.depth--
			if s.depth == 0 {
				s.finish(Position{line, col})
				return
			}
		}
		s.lastSig = Position{line, col + 1}
	}
}

func (s *scanner) finish(close Position) {
	e := s.entry
	e.End = close.Line
	e.Close = close
	e.Splice = s.lastSig
	e.Empty = s.lastSig == Position{e.Open.Line, e.Open.Col + 1}

	s.layout.Entries = append(s.layout.Entries, e)
	s.entry = nil
	s.state = awaitingKey
}

// parseFields reads the comma-separated run of plain integers that starts a
// value block.
func parseFields(line int, text string, col int) []Field {
	var fields []Field
	for {
		for col < len(text) && isBlank(text[col]) {
			col++
		}
		start := col
		for col < len(text) && isDigit(text[col]) {
			col++
		}
		if start == col {
			return fields
		}
		n, err := strconv.Atoi(text[start:col])
		if err != nil {
			return fields
		}
		fields = append(fields, Field{Value: n, Pos: Position{line, start}, Len: col - start})

		for col < len(text) && isBlank(text[col]) {
			col++
		}
		if col >= len(text) || text[col] != ',' {
			return fields
		}
		col++
	}
}

// parseKeyLine recognises
//
//	[opcode] oc = { a , b , c } [;]
//	[int] oc = n [;]
//
// where the second form is the dense index Densify writes.
//
// It returns nil without error for lines of any other shape, and an error
// when the shape matches but a byte or index doesn't parse.
func parseKeyLine(line string) (*KeyLine, error) {
	c := cursor{s: line}
	c.skipBlanks()
	key := &KeyLine{Start: c.pos}

	if c.word("opcode") || c.word("int") {
		if !c.skipBlanks() {
			return nil, nil
		}
		key.Decl = true
	}
	if !c.word("oc") {
		return nil, nil
	}
	c.skipBlanks()
	if !c.char('=') {
		return nil, nil
	}
	c.skipBlanks()
	if c.pos < len(c.s) && isDigit(c.s[c.pos]) {
		return parseDenseKey(&c, key)
	}
	if !c.char('{') {
		return nil, nil
	}

	var toks [3]string
	for i := range toks {
		c.skipBlanks()
		toks[i] = c.span(isKeyByteChar)
		if toks[i] == "" {
			return nil, nil
		}
		c.skipBlanks()
		if i < 2 && !c.char(',') {
			return nil, nil
		}
	}
	if !c.char('}') {
		return nil, nil
	}
	c.terminate(key)

	for i, tok := range toks {
		b, err := parseKeyByte(tok)
		if err != nil {
			return nil, err
		}
		key.Raw[i] = b
	}
	return key, nil
}

func parseDenseKey(c *cursor, key *KeyLine) (*KeyLine, error) {
	tok := c.span(isDigit)
	if c.pos < len(c.s) && isIdentChar(c.s[c.pos]) {
		// Something like 0x3E, which no pass writes.
		return nil, nil
	}
	c.terminate(key)

	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, &KeyError{Token: tok}
	}
	t, err := opcode.IndexTriple(n)
	if err != nil {
		return nil, err
	}
	key.Raw = t.Raw()
	key.Dense = true
	return key, nil
}

// parseKeyByte reads one component of a key. Components are hexadecimal
// whether or not they carry a 0x prefix.
func parseKeyByte(tok string) (byte, error) {
	digits := tok
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	n, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, &KeyError{Token: tok}
	}
	return byte(n), nil
}

// matchValueOpen recognises "[Instruction] i = {" at the start of a line and
// returns the column of the brace.
func matchValueOpen(line string) (int, bool) {
	c := cursor{s: line}
	c.skipBlanks()
	if c.word("Instruction") {
		if !c.skipBlanks() {
			return 0, false
		}
	}
	if !c.word("i") {
		return 0, false
	}
	c.skipBlanks()
	if !c.char('=') {
		return 0, false
	}
	c.skipBlanks()
	if c.pos >= len(c.s) || c.s[c.pos] != '{' {
		return 0, false
	}
	return c.pos, true
}

// parseComment recognises a line holding only a "//" comment with some
// text in it.
func parseComment(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "//") {
		return "", false
	}
	text := strings.TrimSpace(trimmed[2:])
	if text == "" {
		return "", false
	}
	return text, true
}

type cursor struct {
	s   string
	pos int
}

// skipBlanks reports whether it skipped anything.
func (c *cursor) skipBlanks() bool {
	start := c.pos
	for c.pos < len(c.s) && isBlank(c.s[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

// word consumes w if it appears at the cursor as a whole identifier.
func (c *cursor) word(w string) bool {
	if !strings.HasPrefix(c.s[c.pos:], w) {
		return false
	}
	end := c.pos + len(w)
	if end < len(c.s) && isIdentChar(c.s[end]) {
		return false
	}
	c.pos = end
	return true
}

// terminate ends key at the cursor, taking in an optional semicolon.
func (c *cursor) terminate(key *KeyLine) {
	key.End = c.pos
	save := c.pos
	c.skipBlanks()
	if c.char(';') {
		key.End = c.pos
	} else {
		c.pos = save
	}
}

func (c *cursor) char(ch byte) bool {
	if c.pos < len(c.s) && c.s[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) span(ok func(byte) bool) string {
	start := c.pos
	for c.pos < len(c.s) && ok(c.s[c.pos]) {
		c.pos++
	}
	return c.s[start:c.pos]
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isKeyByteChar(c byte) bool {
	return isIdentChar(c) && c != '_'
}
