package timing

import (
	"github.com/zxpp/z80meta/opcode"
)

// Database holds the parsed timing records in file order. It is built once
// and never modified afterwards.
type Database struct {
	records []*Record
	triples []opcode.Triple
}

func (db *Database) add(rec *Record) error {
	_, t, err := rec.Descriptor()
	if err != nil {
		return &RecordError{Line: rec.Line, Err: err}
	}
	for i, other := range db.triples {
		if other == t {
			return &DuplicateError{Triple: t, FirstLine: db.records[i].Line, SecondLine: rec.Line}
		}
	}
	db.records = append(db.records, rec)
	db.triples = append(db.triples, t)
	return nil
}

// Find returns the record whose descriptor reduces to t.
func (db *Database) Find(t opcode.Triple) (*Record, error) {
	for i, other := range db.triples {
		if other == t {
			return db.records[i], nil
		}
	}
	return nil, &NotFoundError{Triple: t}
}

// Records returns the records in file order.
func (db *Database) Records() []*Record {
	return db.records
}

func (db *Database) Len() int {
	return len(db.records)
}
