package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zxpp/z80meta/table"
)

// config is read from an optional TOML file, then overridden by Z80META_*
// environment variables and finally by command line flags.
type config struct {
	// Timings is the timing database file.
	Timings string `toml:"timings"`

	// OutputSuffix is appended to the table's file name to name the
	// generated table.
	OutputSuffix string `toml:"output_suffix"`

	// CycleTypePrefix qualifies the machine cycle type names written into
	// the generated table.
	CycleTypePrefix string `toml:"cycle_type_prefix"`

	// Header is the comment block written at the top of the generated
	// table, one element per line.
	Header []string `toml:"header"`
}

const defaultConfigFile = "z80meta.toml"

func defaultConfig() config {
	return config{
		Timings:         "timings.txt",
		OutputSuffix:    ".new",
		CycleTypePrefix: table.DefaultFormat.CycleTypePrefix,
		Header:          append([]string(nil), table.DefaultHeader...),
	}
}

// loadConfig reads filename over the defaults. A missing file is only an
// error when the caller asked for it explicitly.
func loadConfig(filename string, explicit bool) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.Timings = envString("Z80META_TIMINGS", cfg.Timings)
	cfg.OutputSuffix = envString("Z80META_OUTPUT_SUFFIX", cfg.OutputSuffix)
	cfg.CycleTypePrefix = envString("Z80META_CYCLE_TYPE_PREFIX", cfg.CycleTypePrefix)

	if cfg.OutputSuffix == "" {
		// An empty suffix would overwrite the hand-maintained table.
		return cfg, fmt.Errorf("output_suffix must not be empty")
	}
	return cfg, nil
}

func envString(name string, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
