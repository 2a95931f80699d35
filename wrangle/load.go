package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/zxpp/z80meta/progress"
	"github.com/zxpp/z80meta/table"
	"github.com/zxpp/z80meta/timing"
)

// loadTimings reads the timing database. Lines that don't parse are logged
// and skipped; dots, when not nil, receives the progress indicator.
func loadTimings(filename string, dots io.Writer) (*timing.Database, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load timing database: %w", err)
	}
	defer r.Close()

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to load timing database: %w", err)
	}

	db, skipped, err := timing.Parse(lines, progress.New(dots, "Parsing timing database", timing.ProgressEvery))
	for _, lerr := range skipped {
		log.Printf("%s: skipped %s", filename, lerr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load timing database: %s: %w", filename, err)
	}
	return db, nil
}

// loadTable reads an instruction table. Its lines are kept exactly as
// written, so writing them back reproduces the file.
func loadTable(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load instruction table: %w", err)
	}
	return table.SplitLines(string(data)), nil
}

func writeTable(filename string, lines []string) error {
	w, err := os.Create(filename)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(table.JoinLines(lines))
	if err := bw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return w.Close()
}
