// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/pairalign/aligner"
	"github.com/katalvlaran/pairalign/config"
	"github.com/katalvlaran/pairalign/coordinator"
	"github.com/katalvlaran/pairalign/input"
	"github.com/katalvlaran/pairalign/report"
)

type pairsOptions struct {
	FASTA bool
}

func newPairsCommand(s streams, root *rootOptions) *cobra.Command {
	opts := &pairsOptions{}
	cmd := &cobra.Command{
		Use:   "pairs [file]",
		Short: "Align every pair of k sequences across cooperating workers",
		Long: `Reads "mismatch gap k seq_0 ... seq_{k-1}" (or FASTA with --fasta) from
file or stdin, aligns all k(k-1)/2 pairs round robin over --workers ranks,
and prints the aggregate digest and the penalties in pair order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPairs(cmd, args, s, root, opts)
		},
	}
	addPairsFlags(cmd.Flags(), opts)
	return cmd
}

func addPairsFlags(fs *pflag.FlagSet, opts *pairsOptions) {
	fs.Int(config.KeyWorkers, config.DefaultWorkers, "Number of ranks (rank 0 coordinates)")
	fs.Int(config.KeyLocalWorkers, 1, "Goroutines per rank aligning its pairs")
	fs.Int(config.KeyWavefrontThreads, 0, "Wavefront threads per alignment (0 = sequential fill)")
	fs.BoolVar(&opts.FASTA, "fasta", false, "Input is FASTA; penalties come from --mismatch and --gap")
	fs.Int(config.KeyMismatch, config.DefaultMismatch, "Mismatch penalty (FASTA input only)")
	fs.Int(config.KeyGap, config.DefaultGap, "Gap penalty (FASTA input only)")
}

func runPairs(cmd *cobra.Command, args []string, s streams, root *rootOptions, opts *pairsOptions) error {
	sess, err := setup(cmd, s, root)
	if err != nil {
		return err
	}
	defer sess.close()
	cfg := sess.cfg

	in, err := readPairsInput(args, s, cfg, opts.FASTA)
	if err != nil {
		return exitError{code: ExitError, err: err}
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return exitError{code: ExitUsage, err: err}
	}

	sess.log.Info().
		Int("k", in.K()).
		Int("workers", cfg.Workers).
		Int("local_workers", cfg.LocalWorkers).
		Int("wavefront_threads", cfg.WavefrontThreads).
		Msg("pairs")

	start := time.Now()
	out, err := coordinator.RunLocal(cmd.Context(), in, cfg.Workers,
		coordinator.WithFiller(aligner.FillerFor(cfg.WavefrontThreads)),
		coordinator.WithLocalWorkers(cfg.LocalWorkers),
		coordinator.WithLogger(sess.log),
	)
	if err != nil {
		return exitError{code: ExitError, err: err}
	}
	elapsed := time.Since(start)

	if err := report.New(s.stdout, format, cfg.Timing).Pairs(out, elapsed); err != nil {
		return exitError{code: ExitError, err: err}
	}
	return nil
}

func readPairsInput(args []string, s streams, cfg config.Config, fasta bool) (*coordinator.Input, error) {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	rc, err := input.Open(path, s.stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if !fasta {
		return input.Read(rc)
	}
	seqs, err := input.ReadFASTA(rc)
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%s: no FASTA records", path)
	}
	return &coordinator.Input{Penalties: cfg.Penalties, Sequences: seqs}, nil
}
