package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"rsc.io/diff"

	"github.com/zxpp/z80meta/progress"
	"github.com/zxpp/z80meta/table"
	"github.com/zxpp/z80meta/timing"
)

var errCheckFailed = errors.New("instruction table check failed")

func newGenerateCmd(opts *options) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "generate TABLE",
		Short: "Write the generated instruction table next to TABLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			db, err := loadTimings(cfg.Timings, opts.dots(cmd))
			if err != nil {
				return err
			}
			lines, err := loadTable(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			out, err := generateTable(w, lines, db, cfg, opts.dots(cmd))
			if err != nil {
				return err
			}

			filename := args[0] + cfg.OutputSuffix
			if err := writeTable(filename, out); err != nil {
				return err
			}
			if showDiff {
				fmt.Fprint(w, diff.Format(table.JoinLines(lines), table.JoinLines(out)))
			}

			// Check what actually landed on disk.
			written, err := loadTable(filename)
			if err != nil {
				return err
			}
			report, err := table.CheckOperandBytes(written)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			printOperandReport(w, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the changes made to the table")
	return cmd
}

// generateTable runs every pass over a hand-maintained table, in order, and
// returns the generated table. Timing mismatches are reported to w but
// don't stop generation.
func generateTable(w io.Writer, lines []string, db *timing.Database, cfg config, dots io.Writer) ([]string, error) {
	format := table.Format{CycleTypePrefix: cfg.CycleTypePrefix}
	lines, err := table.InjectTiming(lines, db, format, progress.New(dots, "Adding timing information", table.ProgressEvery))
	if err != nil {
		return nil, fmt.Errorf("failed to add timing information: %w", err)
	}

	fmt.Fprintln(w, "Checking instruction T-state timing...")
	report, _, err := table.CheckTiming(lines, db, false)
	if err != nil {
		return nil, fmt.Errorf("failed to check timing: %w", err)
	}
	printTimingReport(w, report, false)

	fmt.Fprintln(w, "Adding mnemonics...")
	lines, err = table.InjectMnemonics(lines, db)
	if err != nil {
		return nil, fmt.Errorf("failed to add mnemonics: %w", err)
	}

	lines, _, err = table.Densify(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite opcode keys: %w", err)
	}

	return table.AddHeader(lines, cfg.Header), nil
}

func newFixCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix TABLE",
		Short: "Correct the T-state fields of TABLE in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			db, err := loadTimings(cfg.Timings, opts.dots(cmd))
			if err != nil {
				return err
			}
			lines, err := loadTable(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Checking instruction T-state timing...")
			report, fixed, err := table.CheckTiming(lines, db, true)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printTimingReport(w, report, true)

			switch {
			case dryRun:
				fmt.Fprint(w, diff.Format(table.JoinLines(lines), table.JoinLines(fixed)))
				return nil
			case report.Fixed == 0:
				return nil
			default:
				return writeTable(args[0], fixed)
			}
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the corrections without writing them")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check TABLE",
		Short: "Check the T-state and operand byte fields of TABLE",
		Long: `Check the T-state and operand byte fields of TABLE.

TABLE may be a hand-maintained table or one written by generate: opcode keys
are read in both the {a,b,c} form and the dense index form.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			db, err := loadTimings(cfg.Timings, opts.dots(cmd))
			if err != nil {
				return err
			}
			lines, err := loadTable(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Checking instruction T-state timing...")
			timingReport, _, err := table.CheckTiming(lines, db, false)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printTimingReport(w, timingReport, false)

			operandReport, err := table.CheckOperandBytes(lines)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printOperandReport(w, operandReport)

			if !timingReport.OK() || !operandReport.OK() {
				return errCheckFailed
			}
			return nil
		},
	}
}

func printTimingReport(w io.Writer, report *table.TimingReport, fixing bool) {
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "Bad %s timing: line %d should be %d\n", m.Kind, m.Line, m.Want)
		if fixing {
			fmt.Fprintln(w, "fixing...")
		}
	}
	if report.OK() {
		fmt.Fprintln(w, "All T-state timing values correct.")
	} else {
		fmt.Fprintf(w, "%d errors in timing values.\n", len(report.Mismatches))
	}
	if fixing && report.Fixed > 0 {
		fmt.Fprintf(w, "%d entries corrected.\n", report.Fixed)
	}
}

func printOperandReport(w io.Writer, report *table.OperandReport) {
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "Sanity check failed: line %d\n", m.Line)
		fmt.Fprintf(w, "Should have %d bytes, has %d\n", m.Want, m.Got)
	}
	if report.OK() {
		fmt.Fprintln(w, "Sanity check successful")
	}
}
