package table

import (
	"errors"
	"fmt"
)

// EntryError ties an error to a line of the table.
type EntryError struct {
	Line int // 1-based
	Err  error
}

func (err *EntryError) Error() string {
	return fmt.Sprintf("line %d: %s", err.Line, err.Err)
}

func (err *EntryError) Unwrap() error {
	return err.Err
}

// ErrNoKey is reported for an entry that isn't preceded by a key line.
var ErrNoKey = errors.New("instruction has no opcode key")

// ErrNoMnemonic is reported for an entry with neither a comment nor a
// database mnemonic to name it.
var ErrNoMnemonic = errors.New("instruction has no mnemonic")

// KeyError is a key line component that isn't a hex byte.
type KeyError struct {
	Token string
}

func (err *KeyError) Error() string {
	return fmt.Sprintf("opcode key component %q is not a hex byte", err.Token)
}

// UnterminatedError is an entry whose value block never closes.
type UnterminatedError struct {
	Line int // 1-based line the entry starts on
}

func (err *UnterminatedError) Error() string {
	return fmt.Sprintf("line %d: instruction block is never closed", err.Line)
}

// CollisionError is two keys that map to the same dense index.
type CollisionError struct {
	Index      int
	FirstLine  int
	SecondLine int
}

func (err *CollisionError) Error() string {
	return fmt.Sprintf("lines %d and %d both map to opcode index %d", err.FirstLine, err.SecondLine, err.Index)
}
