package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxpp/z80meta/opcode"
)

func TestDensify(t *testing.T) {
	lines := []string{
		"opcode oc = {0,0,0x3E};",
		"i = {7, 7, 1};",
		"    oc = {0,0xCB,0x07}; // RLC A",
		"i = {8, 8, 0};",
		"oc = {0xDD, 0xCB, 0x06};",
		"i = {23, 23, 1};",
		"oc = {0xFD,0xCB,0x06};",
		"oc = {0, 0xED, 0xB0};",
	}
	got, dm, err := Densify(lines)
	require.NoError(t, err)

	want := []string{
		"int oc = 62;",
		"i = {7, 7, 1};",
		"    oc = 1031; // RLC A",
		"i = {8, 8, 0};",
		"oc = 2310;",
		"i = {23, 23, 1};",
		"oc = 2566;",
		"oc = 944;",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Densify(): (-want, +got)\n%s", diff)
	}

	assert.Equal(t, 5, dm.Len())
	assert.Equal(t, []int{62, 944, 1031, 2310, 2566}, dm.Indexes())
	line, ok := dm.Line(1031)
	assert.True(t, ok)
	assert.Equal(t, 3, line)
	_, ok = dm.Line(0)
	assert.False(t, ok)

	again, dm, err := Densify(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 5, dm.Len())
}

func TestDensifyCollision(t *testing.T) {
	_, _, err := Densify([]string{
		"oc = {0,0,0x3E};",
		"i = {7, 7, 1};",
		"oc = {0,0,3E};",
		"i = {7, 7, 1};",
	})
	var collision *CollisionError
	require.True(t, errors.As(err, &collision), "got %v", err)
	assert.Equal(t, &CollisionError{Index: 62, FirstLine: 1, SecondLine: 3}, collision)
}

func TestDensifyBadPrefix(t *testing.T) {
	_, _, err := Densify([]string{"oc = {0,0x12,0};"})
	var prefixErr *opcode.PrefixError
	require.True(t, errors.As(err, &prefixErr), "got %v", err)
	assert.Equal(t, 1, prefixErr.Position)

	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 1, entryErr.Line)
}
