package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"github.com/zxpp/z80meta/opcode"
	"github.com/zxpp/z80meta/timing"
)

func newDumpCmd(opts *options) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "dump [DESCRIPTOR...]",
		Short: "Print the timing records, or just those matching the given opcode descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			db, err := loadTimings(cfg.Timings, opts.dots(cmd))
			if err != nil {
				return err
			}

			records := db.Records()
			if len(args) > 0 {
				records, err = findRecords(db, args)
				if err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if asYAML {
				return dumpYAML(w, records)
			}
			spew.Fdump(w, records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of a Go value dump")
	return cmd
}

// findRecords looks up the record for each descriptor. Descriptors match by
// canonical triple, so "3E" and "3EU0" find the same record.
func findRecords(db *timing.Database, descs []string) ([]*timing.Record, error) {
	ret := make([]*timing.Record, 0, len(descs))
	for _, s := range descs {
		d, err := opcode.ParseDescriptor(s)
		if err != nil {
			return nil, err
		}
		t, err := d.Triple()
		if err != nil {
			return nil, err
		}
		rec, err := db.Find(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		ret = append(ret, rec)
	}
	return ret, nil
}

func dumpYAML(w io.Writer, records []*timing.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe DESCRIPTOR...",
		Short: "Show how opcode descriptors are parsed and keyed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range args {
				d, err := opcode.ParseDescriptor(s)
				if err != nil {
					return err
				}
				fmt.Fprint(w, describeTree(d).String())
			}
			return nil
		},
	}
}

func describeTree(d *opcode.Descriptor) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(d.Text)

	tree.AddMetaNode("bytes", hexBytes(d.Bytes).String())
	if len(d.Data) > 0 {
		data := tree.AddMetaBranch("data", len(d.Data))
		for _, tok := range d.Data {
			switch tok.Kind {
			case opcode.Literal:
				data.AddMetaNode("literal", tok.String())
			default:
				data.AddMetaNode("operand", tok.String())
			}
		}
	}
	tree.AddMetaNode("word", fmt.Sprintf("%t (high first: %t)", d.HasWord, d.HighFirst))
	tree.AddMetaNode("opcode", hexBytes(d.OpcodeBytes()).String())
	tree.AddMetaNode("operand bytes", d.OperandBytes())

	t, err := d.Triple()
	if err != nil {
		tree.AddMetaNode("triple", err.Error())
		return tree
	}
	tree.AddMetaNode("triple", t.String())
	tree.AddMetaNode("index", t.Index())
	return tree
}
