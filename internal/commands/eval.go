package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/gosc/internal/config"
	"github.com/mvbarbosa/gosc/internal/eval"
)

// evalSuites lists the harness suites in report order.
var evalSuites = []string{"roundtrip", "timing", "collisions", "diffusion", "confusion"}

// NewEvalCmd creates the eval command, which runs the statistical
// evaluation harness against the cipher.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [suite...]",
		Short: "Run the statistical evaluation harness",
		Long: `Measures the cipher from the outside: round-trip correctness, wall-clock
cost per seed size, ciphertext collisions across seeds, and bit-flip
propagation for message bits (diffusion) and seed characters (confusion).
With no arguments every suite runs.`,
		ValidArgs:         append([]string{"all"}, evalSuites...),
		Args:              cobra.OnlyValidArgs,
		PersistentPreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return runEval(cmd, cfg, args)
		},
	}

	cmd.Flags().IntP("trials", "t", 100, "Round-trip trials")
	cmd.Flags().Int("collision-trials", 2000, "Seeds for the collision census")
	cmd.Flags().Int("reps", 100, "Repetitions per timing measurement")
	cmd.Flags().IntSlice("seed-sizes", eval.DefaultSeedSizes, "Seed lengths for the timing sweep")
	cmd.Flags().StringP("seed", "s", "statistical-evaluation-seed!", "Seed for the diffusion and confusion sweeps")
	cmd.Flags().Bool("baseline", false, "Also run the AES-SIV reference cipher in the diffusion sweep")

	return cmd
}

//nolint:cyclop
func runEval(cmd *cobra.Command, cfg config.Config, args []string) error {
	log := newLogger(cfg)

	runner := eval.NewRunner(
		eval.WithParallel(cfg.Parallel),
		eval.WithLogger(log),
	)

	reporter := eval.NewReporter(cmd.OutOrStdout())

	selected := func(suite string) bool {
		return len(args) == 0 || slices.Contains(args, "all") || slices.Contains(args, suite)
	}

	if selected("roundtrip") {
		stats, err := runner.RoundTrip(cfg.Trials)
		if err != nil {
			return err
		}

		reporter.RoundTrip(stats)

		if len(stats.Failed) > 0 {
			return fmt.Errorf("round trip failed for %d of %d seeds", len(stats.Failed), stats.Trials)
		}
	}

	if selected("timing") {
		rows, err := runner.Timing(cfg.SeedSizes, cfg.Reps)
		if err != nil {
			return err
		}

		reporter.Timing(rows, cfg.Reps)
	}

	if selected("collisions") {
		stats, err := runner.Collisions(cfg.CollisionTrials)
		if err != nil {
			return err
		}

		reporter.Collisions(stats)
	}

	if selected("diffusion") {
		stats, err := runner.Diffusion(cfg.Seed, cfg.Baseline)
		if err != nil {
			return err
		}

		reporter.Avalanche("DIFFUSION (message-bit sensitivity)", stats)
	}

	if selected("confusion") {
		stats, err := runner.Confusion(cfg.Seed)
		if err != nil {
			return err
		}

		reporter.Avalanche("CONFUSION (seed-character sensitivity)", stats)
	}

	return nil
}
