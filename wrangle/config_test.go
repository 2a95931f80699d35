package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxpp/z80meta/table"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{"Z80META_TIMINGS", "Z80META_OUTPUT_SUFFIX", "Z80META_CYCLE_TYPE_PREFIX"} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	filename := filepath.Join(t.TempDir(), "z80meta.toml")
	require.NoError(t, os.WriteFile(filename, []byte(`
timings = "db/timings.txt"
output_suffix = ".gen"
header = ["/* one */", "/* two */"]
`), 0o644))

	got, err := loadConfig(filename, true)
	require.NoError(t, err)
	want := config{
		Timings:         "db/timings.txt",
		OutputSuffix:    ".gen",
		CycleTypePrefix: "MachineCycleType::",
		Header:          []string{"/* one */", "/* two */"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loadConfig(): (-want, +got)\n%s", diff)
	}

	t.Setenv("Z80META_TIMINGS", "other.txt")
	t.Setenv("Z80META_CYCLE_TYPE_PREFIX", " Cycle:: ")
	got, err = loadConfig(filename, true)
	require.NoError(t, err)
	assert.Equal(t, "other.txt", got.Timings)
	assert.Equal(t, "Cycle::", got.CycleTypePrefix)
	assert.Equal(t, ".gen", got.OutputSuffix)
}

func TestLoadConfigMissing(t *testing.T) {
	clearEnv(t)
	filename := filepath.Join(t.TempDir(), "z80meta.toml")

	got, err := loadConfig(filename, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), got)
	assert.Equal(t, table.DefaultHeader, got.Header)

	_, err = loadConfig(filename, true)
	require.Error(t, err)
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := map[string]string{
		"syntax":       "timings = ",
		"wrong type":   "header = 3",
		"empty suffix": `output_suffix = ""`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
			_, err := loadConfig(filename, true)
			require.Error(t, err)
		})
	}
}

func TestLoadConfigKeepsDefaultHeader(t *testing.T) {
	clearEnv(t)
	want := append([]string(nil), table.DefaultHeader...)

	filename := filepath.Join(t.TempDir(), "z80meta.toml")
	require.NoError(t, os.WriteFile(filename, []byte(`header = ["// mine"]`), 0o644))

	got, err := loadConfig(filename, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"// mine"}, got.Header)

	assert.Equal(t, "/*", table.DefaultHeader[0])
	assert.Equal(t, want, table.DefaultHeader)
	assert.Equal(t, want, defaultConfig().Header)
}
