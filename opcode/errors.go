package opcode

import (
	"errors"
	"fmt"
)

// ErrorKind says which part of the descriptor grammar failed.
type ErrorKind uint8

const (
	NoOpcodeBytes ErrorKind = iota + 1
	OddHexRun
	UnexpectedText
)

func (k ErrorKind) String() string {
	switch k {
	case NoOpcodeBytes:
		return "no leading opcode bytes"
	case OddHexRun:
		return "odd number of hex digits in opcode bytes"
	case UnexpectedText:
		return "unexpected text"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

type ParseError struct {
	Text   string
	Offset int
	Kind   ErrorKind
}

func (err *ParseError) Error() string {
	if err.Kind == UnexpectedText {
		return fmt.Sprintf("opcode descriptor %q: %s %q at offset %d", err.Text, err.Kind, err.Text[err.Offset:], err.Offset)
	}
	return fmt.Sprintf("opcode descriptor %q: %s", err.Text, err.Kind)
}

// ErrTooManyBytes is returned when an opcode is longer than the three bytes
// a Triple can describe.
var ErrTooManyBytes = errors.New("opcode has more than 3 bytes")

// PrefixError reports a byte in a prefix position that is not one of the
// known prefixes.
type PrefixError struct {
	Position int
	Byte     byte
}

func (err *PrefixError) Error() string {
	return fmt.Sprintf("byte 0x%02X in prefix position %d is not a prefix", err.Byte, err.Position)
}

// IndexError is a dense index that no opcode key maps to.
type IndexError struct {
	Index int
}

func (err *IndexError) Error() string {
	return fmt.Sprintf("%d is not a dense opcode index", err.Index)
}
