package opcode

import (
	"fmt"
)

// Prefix bytes, in prefix class order.
const (
	PrefixDD byte = 0xDD
	PrefixFD byte = 0xFD
	PrefixED byte = 0xED
	PrefixCB byte = 0xCB
)

var prefixClasses = map[byte]int{
	0x00:     0,
	PrefixDD: 1,
	PrefixFD: 2,
	PrefixED: 3,
	PrefixCB: 4,
}

// prefixBytes inverts prefixClasses.
var prefixBytes = [...]byte{0, PrefixDD, PrefixFD, PrefixED, PrefixCB}

// PrefixClass maps a raw prefix byte to its class. Zero stands for "no
// prefix" and maps to class 0.
func PrefixClass(b byte) (int, bool) {
	c, ok := prefixClasses[b]
	return c, ok
}

// TableSize is the number of slots in the dense index space.
const TableSize = 11 * 256

// Triple is the canonical key shared by timing records and table entries:
// two prefix classes followed by the base opcode byte.
type Triple [3]int

// Reduce left-pads an opcode byte sequence to three bytes and maps the two
// prefix positions to their classes.
func Reduce(bytes []byte) (Triple, error) {
	if len(bytes) > 3 {
		return Triple{}, ErrTooManyBytes
	}
	var raw [3]byte
	copy(raw[3-len(bytes):], bytes)
	return KeyTriple(raw)
}

// KeyTriple converts an opcode key as written in the instruction table,
// which uses raw prefix bytes, into its canonical triple.
func KeyTriple(raw [3]byte) (Triple, error) {
	var t Triple
	for i := 0; i < 2; i++ {
		c, ok := PrefixClass(raw[i])
		if !ok {
			return Triple{}, &PrefixError{Position: i, Byte: raw[i]}
		}
		t[i] = c
	}
	t[2] = int(raw[2])
	return t, nil
}

// Index returns the dense table slot for t. Unprefixed opcodes land in
// [0,256); each single prefix gets its own 256-slot bucket and the doubly
// prefixed DDCB/FDCB forms are pushed above all of them.
func (t Triple) Index() int {
	a := t[0]
	if a > 0 {
		a += 4
	}
	return a*256 + t[1]*256 + t[2]
}

func (t Triple) String() string {
	return fmt.Sprintf("[%d,%d,0x%02X]", t[0], t[1], t[2])
}

// Raw returns the key bytes that KeyTriple maps to t.
func (t Triple) Raw() [3]byte {
	var raw [3]byte
	for i := 0; i < 2; i++ {
		if t[i] >= 0 && t[i] < len(prefixBytes) {
			raw[i] = prefixBytes[t[i]]
		}
	}
	raw[2] = byte(t[2])
	return raw
}

// IndexTriple inverts Index for the slots a Z80 opcode can occupy: the
// unprefixed bucket, the four single-prefix buckets and the DDCB and FDCB
// buckets.
func IndexTriple(idx int) (Triple, error) {
	if idx < 0 || idx >= TableSize {
		return Triple{}, &IndexError{Index: idx}
	}
	bucket, base := idx/256, idx%256
	switch {
	case bucket <= 4:
		return Triple{0, bucket, base}, nil
	case bucket == 9:
		return Triple{1, 4, base}, nil
	case bucket == 10:
		return Triple{2, 4, base}, nil
	default:
		return Triple{}, &IndexError{Index: idx}
	}
}
