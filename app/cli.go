// SPDX-License-Identifier: MIT

// Package app is the pairalign command line: flag parsing, configuration,
// wiring of the computation packages, and exit codes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/pairalign/config"
	"github.com/katalvlaran/pairalign/logging"
)

// Version is overridden at link time.
var Version = "dev"

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e exitError) Unwrap() error { return e.err }

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type rootOptions struct {
	ConfigFile string
}

// Run executes the command line in argv (without the program name) and
// returns the process exit code.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RunContext(ctx, argv, stdin, stdout, stderr)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(streams{stdin: stdin, stdout: stdout, stderr: stderr})
	cmd.SetArgs(argv)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var ee exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "pairalign: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "pairalign: %v\n", err)
	return ExitError
}

func newRootCommand(s streams) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pairalign",
		Short:         "Pairwise sequence alignment penalties with distributed and wavefront parallelism",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return exitError{code: ExitUsage, err: fmt.Errorf("%w\n%s", err, c.UsageString())}
	})

	addRootFlags(cmd.PersistentFlags(), opts)
	cmd.AddCommand(
		newPairsCommand(s, opts),
		newAlignCommand(s, opts),
		newVersionCommand(s),
	)
	return cmd
}

func addRootFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.StringVar(&opts.ConfigFile, "config", "", "Config file path (default: $HOME/.pairalign/config.*)")
	fs.String(config.KeyLogLevel, config.DefaultLogLevel, "Log level (trace, debug, info, warn, error, off)")
	fs.Bool(config.KeyLogJSON, false, "Log JSON lines instead of console text")
	fs.String(config.KeyMetricsAddr, "", "Serve Prometheus metrics on this address while running (e.g. :9090)")
	fs.Bool(config.KeyTiming, true, "Include elapsed time in the report")
	fs.String(config.KeyFormat, config.DefaultFormat, "Output format (text, json)")
	fs.Float64(config.KeyMemoryFraction, config.DefaultMemoryFraction, "Fraction of available memory one cost table may use (0 = no limit)")
}

func newVersionCommand(s streams) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version and exit",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(s.stdout, "pairalign version %s\n", Version)
			return nil
		},
	}
}

// session is what every computing subcommand needs once flags are parsed.
type session struct {
	cfg  config.Config
	log  zerolog.Logger
	stop func()
}

func (s *session) close() {
	if s.stop != nil {
		s.stop()
	}
}

func setup(cmd *cobra.Command, s streams, opts *rootOptions) (*session, error) {
	v, err := config.NewViper(opts.ConfigFile)
	if err != nil {
		return nil, exitError{code: ExitError, err: err}
	}
	cfg, err := config.Load(v, cmd.Flags())
	if err != nil {
		return nil, exitError{code: ExitUsage, err: err}
	}
	log, err := logging.New(s.stderr, cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return nil, exitError{code: ExitUsage, err: err}
	}

	if cells, err := config.ApplyMemoryBudget(cfg.MemoryFraction); err != nil {
		log.Warn().Err(err).Msg("memory budget unavailable, cost tables are unbounded")
	} else if cells > 0 {
		log.Debug().Int64("max_cells", cells).Msg("cost table budget")
	}

	stop, err := startMetrics(cfg.MetricsAddr, log)
	if err != nil {
		return nil, exitError{code: ExitError, err: err}
	}
	return &session{cfg: cfg, log: log, stop: stop}, nil
}
