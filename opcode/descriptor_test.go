package opcode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		Text string
		Want *Descriptor
	}{
		{
			Text: "3E",
			Want: &Descriptor{
				Text:  "3E",
				Bytes: []byte{0x3E},
			},
		},
		{
			Text: "01L0H0",
			Want: &Descriptor{
				Text:  "01L0H0",
				Bytes: []byte{0x01},
				Data: []Token{
					{Kind: ClassTag, Class: 'L', Digit: '0'},
					{Kind: ClassTag, Class: 'H', Digit: '0'},
				},
				HasWord: true,
			},
		},
		{
			Text: "C3H1L1",
			Want: &Descriptor{
				Text:  "C3H1L1",
				Bytes: []byte{0xC3},
				Data: []Token{
					{Kind: ClassTag, Class: 'H', Digit: '1'},
					{Kind: ClassTag, Class: 'L', Digit: '1'},
				},
				HasWord:   true,
				HighFirst: true,
			},
		},
		{
			Text: "DDCBS006",
			Want: &Descriptor{
				Text:  "DDCBS006",
				Bytes: []byte{0xDD, 0xCB},
				Data: []Token{
					{Kind: ClassTag, Class: 'S', Digit: '0'},
					{Kind: Literal, Byte: 0x06},
				},
				OpcodeLast: true,
			},
		},
		{
			Text: "dd36s0u0",
			Want: nil, // lower case tags are not tags
		},
		{
			Text: "DD36S0U0",
			Want: &Descriptor{
				Text:  "DD36S0U0",
				Bytes: []byte{0xDD, 0x36},
				Data: []Token{
					{Kind: ClassTag, Class: 'S', Digit: '0'},
					{Kind: ClassTag, Class: 'U', Digit: '0'},
				},
			},
		},
		{
			Text: "10S0",
			Want: &Descriptor{
				Text:  "10S0",
				Bytes: []byte{0x10},
				Data: []Token{
					{Kind: ClassTag, Class: 'S', Digit: '0'},
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Text, func(t *testing.T) {
			got, err := ParseDescriptor(test.Text)
			if test.Want == nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Fatalf("ParseDescriptor(%q): (-want, +got)\n%s", test.Text, diff)
			}
		})
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	tests := []struct {
		Text   string
		Kind   ErrorKind
		Offset int
	}{
		{"", NoOpcodeBytes, 0},
		{"L0H0", NoOpcodeBytes, 0},
		{"ED7", OddHexRun, 2},
		{"01L0X0", UnexpectedText, 4},
		{"01L", UnexpectedText, 2},
		{"01L0H", UnexpectedText, 4},
		{"CBS0 6", UnexpectedText, 4},
	}

	for _, test := range tests {
		t.Run(test.Text, func(t *testing.T) {
			_, err := ParseDescriptor(test.Text)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %v", err)
			assert.Equal(t, test.Kind, perr.Kind)
			assert.Equal(t, test.Offset, perr.Offset)
			assert.Contains(t, perr.Error(), test.Kind.String())
		})
	}
}

func TestDescriptorOpcodeBytes(t *testing.T) {
	d, err := ParseDescriptor("DDCBS006")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDD, 0xCB, 0x06}, d.OpcodeBytes())
	assert.Equal(t, []byte{0xDD, 0xCB}, d.Bytes, "OpcodeBytes must not alias Bytes")
	assert.Equal(t, 1, d.OperandBytes())
	assert.Equal(t, "DDCBS006", d.String())

	d, err = ParseDescriptor("01L0H0")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, d.OpcodeBytes())
	assert.Equal(t, 2, d.OperandBytes())
}

func TestDescriptorTriple(t *testing.T) {
	tests := []struct {
		Text  string
		Want  Triple
		Index int
	}{
		{"3E", Triple{0, 0, 0x3E}, 0x3E},
		{"00", Triple{0, 0, 0x00}, 0},
		{"CB07", Triple{0, 4, 0x07}, 4*256 + 7},
		{"DD21L0H0", Triple{0, 1, 0x21}, 256 + 0x21},
		{"FD21L0H0", Triple{0, 2, 0x21}, 2*256 + 0x21},
		{"ED4A", Triple{0, 3, 0x4A}, 3*256 + 0x4A},
		{"DDCBS006", Triple{1, 4, 0x06}, 9*256 + 6},
		{"FDCBS0FE", Triple{2, 4, 0xFE}, 10*256 + 0xFE},
	}

	for _, test := range tests {
		t.Run(test.Text, func(t *testing.T) {
			d, err := ParseDescriptor(test.Text)
			require.NoError(t, err)
			got, err := d.Triple()
			require.NoError(t, err)
			assert.Equal(t, test.Want, got)
			assert.Equal(t, test.Index, got.Index())

			// the reduction is deterministic
			again, err := d.Triple()
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDescriptorTripleErrors(t *testing.T) {
	d, err := ParseDescriptor("DDCB0607")
	require.NoError(t, err)
	_, err = d.Triple()
	assert.ErrorIs(t, err, ErrTooManyBytes)

	d, err = ParseDescriptor("1234")
	require.NoError(t, err)
	_, err = d.Triple()
	var perr *PrefixError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Position)
	assert.Equal(t, byte(0x12), perr.Byte)
}
