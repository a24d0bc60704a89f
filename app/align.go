// SPDX-License-Identifier: MIT

package app

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/pairalign/aligner"
	"github.com/katalvlaran/pairalign/config"
	"github.com/katalvlaran/pairalign/input"
	"github.com/katalvlaran/pairalign/report"
)

func newAlignCommand(s streams, root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align [file]",
		Short: "Align one pair of sequences with a wavefront-parallel table fill",
		Long: `Reads "mismatch gap x y" from file or stdin and prints the minimum
penalty and the aligned sequences.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(cmd, args, s, root)
		},
	}
	addAlignFlags(cmd.Flags())
	return cmd
}

func addAlignFlags(fs *pflag.FlagSet) {
	fs.Int(config.KeyThreads, 0, "Wavefront threads (0 = one per CPU)")
}

func runAlign(cmd *cobra.Command, args []string, s streams, root *rootOptions) error {
	sess, err := setup(cmd, s, root)
	if err != nil {
		return err
	}
	defer sess.close()
	cfg := sess.cfg

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	rc, err := input.Open(path, s.stdin)
	if err != nil {
		return exitError{code: ExitError, err: err}
	}
	p, x, y, err := input.ReadPair(rc)
	_ = rc.Close()
	if err != nil {
		return exitError{code: ExitError, err: err}
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return exitError{code: ExitUsage, err: err}
	}

	filler := aligner.Wavefront{Workers: cfg.Threads}
	al, err := aligner.New(p, aligner.WithFiller(filler), aligner.WithLogger(sess.log))
	if err != nil {
		return exitError{code: ExitError, err: err}
	}

	start := time.Now()
	res, err := al.Align(cmd.Context(), x, y)
	if err != nil {
		return exitError{code: ExitError, err: err}
	}
	elapsed := time.Since(start)

	if err := report.New(s.stdout, format, cfg.Timing).Single(p, res, elapsed); err != nil {
		return exitError{code: ExitError, err: err}
	}
	return nil
}
