// Command fours prints integers as decorative LaTeX expressions made of
// fours.
//
// Usage:
//
//	fours [--seed N] [--vocab file.yaml] [--verify] [integer ...]
//	fours vocab [--vocab file.yaml]
//	fours eval '<latex expression>'
//
// Without arguments a fixed list of sample integers is written.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fours"
	"github.com/npillmayer/fours/latex"
	"github.com/npillmayer/fours/vocabyaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// samples are written when no integers are given on the command line.
var samples = []int64{0, 1, 2, 3, 4, 5, 10, 37, 100, 300, 1234, -27}

type options struct {
	seed      int64
	vocabPath string
	verify    bool
	debug     bool
}

type app struct {
	opts   options
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "fours [integer ...]",
		Short: "Write integers as LaTeX expressions built from the digit 4",
		Long: `fours writes each integer as a decorative LaTeX expression which uses
no digit but 4 and evaluates to exactly that integer.

Without arguments it writes a fixed list of sample integers.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.opts.debug {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runGenerate,
	}
	root.PersistentFlags().StringVar(&a.opts.vocabPath, "vocab", "", "YAML vocabulary file replacing the built-in tables")
	root.PersistentFlags().BoolVar(&a.opts.debug, "debug", false, "enable debug logging")
	root.Flags().Int64Var(&a.opts.seed, "seed", 0, "seed for reproducible output (random if unset)")
	root.Flags().BoolVar(&a.opts.verify, "verify", false, "re-evaluate every expression and fail on a mismatch")

	root.AddCommand(&cobra.Command{
		Use:   "vocab",
		Short: "Write the vocabulary in use as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := a.vocabulary()
			if err != nil {
				return err
			}
			return vocabyaml.Write(cmd.OutOrStdout(), vocab)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a LaTeX expression of the kind fours writes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := latex.CheckBalanced(args[0]); err != nil {
				return err
			}
			x, err := latex.Evaluate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(x, 'g', -1, 64))
			return nil
		},
	})
	return root
}

func (a *app) vocabulary() (*fours.Vocabulary, error) {
	if a.opts.vocabPath == "" {
		return fours.Builtin(), nil
	}
	f, err := os.Open(a.opts.vocabPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vocab, err := vocabyaml.Load(a.opts.vocabPath, f)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", a.opts.vocabPath, err)
	}
	a.logger.Info("loaded vocabulary",
		zap.String("path", a.opts.vocabPath),
		zap.Int("atoms", len(vocab.Atoms())),
		zap.Int("powers", len(vocab.PowerKeys())))
	return vocab, nil
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	numbers := samples
	if len(args) > 0 {
		numbers = make([]int64, 0, len(args))
		for _, arg := range args {
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("not an integer: %q", arg)
			}
			numbers = append(numbers, n)
		}
	}
	vocab, err := a.vocabulary()
	if err != nil {
		return err
	}
	opts := []fours.Option{fours.WithVocabulary(vocab)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, fours.WithSeed(a.opts.seed))
	}
	a.logger.Debug("generating",
		zap.Int("count", len(numbers)),
		zap.Bool("seeded", cmd.Flags().Changed("seed")),
		zap.Bool("verify", a.opts.verify))
	return writeExpressions(cmd.OutOrStdout(), fours.New(opts...), numbers, a.opts.verify, a.logger)
}

// writeExpressions prints one block per number in the format
//
//	n = 37
//	LaTeX: $…$
//	Check: 37
//	----------------------------------------
func writeExpressions(w io.Writer, gen *fours.Generator, numbers []int64, verify bool, logger *zap.Logger) error {
	for _, n := range numbers {
		tex, check := gen.Generate(n)
		if verify {
			got, err := latex.EvaluateInt(tex)
			if err != nil {
				return fmt.Errorf("verifying %d: %w", n, err)
			}
			if got != n {
				return fmt.Errorf("expression for %d evaluates to %d", n, got)
			}
			logger.Debug("verified", zap.Int64("n", n), zap.Int("length", len(tex)))
		}
		if _, err := fmt.Fprintf(w, "n = %d\nLaTeX: $%s$\nCheck: %d\n%s\n",
			n, tex, check, strings.Repeat("-", 40)); err != nil {
			return err
		}
	}
	return nil
}
