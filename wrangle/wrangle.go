package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	configFile string
	timings    string
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "z80meta",
		Short: "Derive Z80 instruction timing metadata for the emulator's instruction table",
		Long: `z80meta merges a per-opcode timing database into the hand-maintained
instruction table, checks the T-state and operand byte counts written there,
and rewrites opcode keys into the dense indexes the emulator uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&opts.configFile, "config", defaultConfigFile, "configuration file")
	root.PersistentFlags().StringVar(&opts.timings, "timings", "", "timing database (overrides the configuration)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "don't print progress dots")

	root.AddCommand(
		newGenerateCmd(opts),
		newFixCmd(opts),
		newCheckCmd(opts),
		newDumpCmd(opts),
		newDescribeCmd(),
	)
	return root
}

func (opts *options) config(cmd *cobra.Command) (config, error) {
	cfg, err := loadConfig(opts.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}
	if opts.timings != "" {
		cfg.Timings = opts.timings
	}
	return cfg, nil
}

// dots is where progress indicators go, or nil when they are disabled.
func (opts *options) dots(cmd *cobra.Command) io.Writer {
	if opts.quiet {
		return nil
	}
	return cmd.ErrOrStderr()
}
