package opcode

import (
	"fmt"
	"strings"
)

// TokenKind distinguishes the two kinds of token that may follow the
// leading opcode bytes of a descriptor.
type TokenKind uint8

const (
	Literal  TokenKind = iota // a fixed hex byte, e.g. "06"
	ClassTag                  // an operand placeholder, e.g. "L0"
)

// Placeholder classes.
const (
	ClassLow          = 'L' // low byte of a word operand
	ClassHigh         = 'H' // high byte of a word operand
	ClassUnsigned     = 'U' // unsigned byte operand
	ClassDisplacement = 'S' // signed byte or displacement
)

type Token struct {
	Kind TokenKind

	// Byte is set for Literal tokens.
	Byte byte

	// Class and Digit are set for ClassTag tokens.
	Class byte
	Digit byte
}

func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("%02X", t.Byte)
	}
	return fmt.Sprintf("%c%c", t.Class, t.Digit)
}

// Descriptor is the parsed form of the compact opcode string that begins
// each timing database line, such as "01L0H0" or "DDCBS006".
type Descriptor struct {
	Text string

	// Bytes is the leading run of fixed opcode bytes.
	Bytes []byte

	// Data is everything after Bytes, in order.
	Data []Token

	// HasWord is set when an L or H placeholder occurs, and HighFirst
	// records whether the first of those was H.
	HasWord   bool
	HighFirst bool

	// OpcodeLast is set when the final data token is a literal. That
	// literal then belongs to the opcode (DDCB d op style encodings)
	// rather than being operand data.
	OpcodeLast bool
}

// ParseDescriptor parses a descriptor in a single left-to-right pass. The
// whole string must be consumed.
func ParseDescriptor(s string) (*Descriptor, error) {
	d := &Descriptor{Text: s}

	run := 0
	for run < len(s) && isHex(s[run]) {
		run++
	}
	if run == 0 {
		return nil, &ParseError{Text: s, Offset: 0, Kind: NoOpcodeBytes}
	}
	if run%2 != 0 {
		return nil, &ParseError{Text: s, Offset: run - 1, Kind: OddHexRun}
	}
	for i := 0; i < run; i += 2 {
		d.Bytes = append(d.Bytes, hexPair(s[i], s[i+1]))
	}

	pos := run
	for pos < len(s) {
		c := s[pos]
		switch {
		case isClass(c) && pos+1 < len(s) && isDigit(s[pos+1]):
			// Class tags are tried first. None of L, H, U or S is a hex
			// digit, so a tag can never be mistaken for half a literal.
			if (c == ClassLow || c == ClassHigh) && !d.HasWord {
				d.HasWord = true
				d.HighFirst = c == ClassHigh
			}
			d.Data = append(d.Data, Token{Kind: ClassTag, Class: c, Digit: s[pos+1]})
		case isHex(c) && pos+1 < len(s) && isHex(s[pos+1]):
			d.Data = append(d.Data, Token{Kind: Literal, Byte: hexPair(c, s[pos+1])})
		default:
			return nil, &ParseError{Text: s, Offset: pos, Kind: UnexpectedText}
		}
		pos += 2
	}

	if n := len(d.Data); n > 0 {
		d.OpcodeLast = d.Data[n-1].Kind == Literal
	}

	return d, nil
}

// OpcodeBytes returns the bytes identifying the instruction: the leading
// run, extended by the trailing literal data token when there is one.
func (d *Descriptor) OpcodeBytes() []byte {
	ret := make([]byte, len(d.Bytes), len(d.Bytes)+1)
	copy(ret, d.Bytes)
	if d.OpcodeLast {
		ret = append(ret, d.Data[len(d.Data)-1].Byte)
	}
	return ret
}

// Triple reduces the descriptor to its canonical opcode triple.
func (d *Descriptor) Triple() (Triple, error) {
	t, err := Reduce(d.OpcodeBytes())
	if err != nil {
		return Triple{}, fmt.Errorf("descriptor %q: %w", d.Text, err)
	}
	return t, nil
}

// OperandBytes counts the placeholder tokens, which is the number of
// operand bytes that follow the opcode in memory.
func (d *Descriptor) OperandBytes() int {
	n := 0
	for _, tok := range d.Data {
		if tok.Kind == ClassTag {
			n++
		}
	}
	return n
}

func (d *Descriptor) String() string {
	var buf strings.Builder
	for _, b := range d.Bytes {
		fmt.Fprintf(&buf, "%02X", b)
	}
	for _, tok := range d.Data {
		buf.WriteString(tok.String())
	}
	return buf.String()
}

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isClass(c byte) bool {
	switch c {
	case ClassLow, ClassHigh, ClassUnsigned, ClassDisplacement:
		return true
	}
	return false
}

func hexNibble(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func hexPair(hi, lo byte) byte {
	return hexNibble(hi)<<4 | hexNibble(lo)
}
