package timing

import (
	"fmt"
)

// CycleType is the kind of bus transaction a machine cycle performs.
type CycleType uint8

const (
	Unused CycleType = iota
	M1R              // opcode fetch
	MRD              // memory read
	MWR              // memory write
	IOR              // I/O read
	IOW              // I/O write
	NON              // internal operation, no bus access
)

var cycleTypeNames = [...]string{
	Unused: "UNUSED",
	M1R:    "M1R",
	MRD:    "MRD",
	MWR:    "MWR",
	IOR:    "IOR",
	IOW:    "IOW",
	NON:    "NON",
}

// cycleTypeTags are the spellings used in the timing database, where an
// unused slot is written "...".
var cycleTypeTags = map[string]CycleType{
	"...": Unused,
	"M1R": M1R,
	"MRD": MRD,
	"MWR": MWR,
	"IOR": IOR,
	"IOW": IOW,
	"NON": NON,
}

// ParseCycleType recognises a timing database cycle tag.
func ParseCycleType(tag string) (CycleType, bool) {
	ct, ok := cycleTypeTags[tag]
	return ct, ok
}

func (ct CycleType) String() string {
	if int(ct) < len(cycleTypeNames) {
		return cycleTypeNames[ct]
	}
	return fmt.Sprintf("CycleType(%d)", uint8(ct))
}

// MarshalYAML renders the type by name.
func (ct CycleType) MarshalYAML() (interface{}, error) {
	return ct.String(), nil
}

// NumCycles is the fixed number of cycle slots in every record.
const NumCycles = 7

type Cycle struct {
	Type     CycleType `yaml:"type"`
	Duration int       `yaml:"duration"`
}

// Record is one line of the timing database.
type Record struct {
	Line int `yaml:"line"`

	// Opcode is the raw descriptor, e.g. "DDCBS006".
	Opcode string `yaml:"opcode"`

	// Taken and NotTaken are the total T-states when a conditional
	// instruction's branch is or isn't taken. A NotTaken of zero means the
	// instruction has no distinct not-taken path.
	Taken    int `yaml:"taken"`
	NotTaken int `yaml:"not_taken"`

	Cycles      [NumCycles]Cycle `yaml:"cycles,flow"`
	ValidCycles int              `yaml:"valid_cycles"`

	Mnemonic string `yaml:"mnemonic"`
}

// CountValidCycles counts the cycles with a non-zero duration.
func CountValidCycles(cycles [NumCycles]Cycle) int {
	n := 0
	for _, c := range cycles {
		if c.Duration > 0 {
			n++
		}
	}
	return n
}
