package timing

import (
	"errors"
	"fmt"

	"github.com/zxpp/z80meta/opcode"
)

// ErrorKind says why a database line was rejected.
type ErrorKind uint8

const (
	MissingField ErrorKind = iota + 1
	BadNumber
	UnknownCycleType
	MissingMnemonic
	BadDescriptorToken
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case BadNumber:
		return "not a number"
	case UnknownCycleType:
		return "unknown cycle type"
	case MissingMnemonic:
		return "missing mnemonic"
	case BadDescriptorToken:
		return "bad opcode descriptor token"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// LineError describes a database line that was skipped.
type LineError struct {
	Line  int // 1-based
	Text  string
	Kind  ErrorKind
	Field int    // index of the offending whitespace-separated field
	Token string // the offending token, if any
}

func (err *LineError) Error() string {
	if err.Token == "" {
		return fmt.Sprintf("line %d: %s (field %d)", err.Line, err.Kind, err.Field)
	}
	return fmt.Sprintf("line %d: %s %q (field %d)", err.Line, err.Kind, err.Token, err.Field)
}

// RecordError is a fatal load error for a line whose layout was fine but
// whose opcode descriptor could not be parsed or reduced.
type RecordError struct {
	Line int
	Err  error
}

func (err *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s", err.Line, err.Err)
}

func (err *RecordError) Unwrap() error {
	return err.Err
}

// DuplicateError reports two records that reduce to the same triple.
type DuplicateError struct {
	Triple     opcode.Triple
	FirstLine  int
	SecondLine int
}

func (err *DuplicateError) Error() string {
	return fmt.Sprintf("lines %d and %d both describe opcode %s", err.FirstLine, err.SecondLine, err.Triple)
}

// ErrNotFound is wrapped by every NotFoundError.
var ErrNotFound = errors.New("no timing record")

type NotFoundError struct {
	Triple opcode.Triple
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("no timing record for opcode %s", err.Triple)
}

func (err *NotFoundError) Unwrap() error {
	return ErrNotFound
}
