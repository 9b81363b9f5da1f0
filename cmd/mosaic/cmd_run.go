package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mosaic/internal/format"
	"mosaic/internal/logging"
	"mosaic/pkg/benchmarks"
	"mosaic/pkg/common"
	"mosaic/pkg/component"
	"mosaic/pkg/conditions"
	"mosaic/pkg/initialization"
	"mosaic/pkg/objective"
	"mosaic/pkg/problem"
	"mosaic/pkg/replacement"
	"mosaic/pkg/run"
	"mosaic/pkg/runner"
	"mosaic/pkg/state"
	"mosaic/pkg/tracking"
)

var (
	runConfigPath string
	runSeed       uint64
	runLogDir     string
	runMarkdown   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an experiment batch described by a YAML file",
	Long: `Loads an experiment file, assembles the configured algorithm, executes
the batch in parallel, and prints a per-run results table. With --log-dir,
the compressed per-run logs are written as JSON next to the results.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to experiment YAML (required)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "override the experiment seed")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", "", "directory for compressed per-run logs")
	runCmd.Flags().BoolVar(&runMarkdown, "markdown", false, "render the results table as Markdown")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, _ []string) error {
	exp, err := LoadExperiment(runConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		exp.Seed = runSeed
	}

	level, err := logging.ParseLevel(exp.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, exp.Log.Format)

	switch exp.Problem {
	case "sphere":
		return runExperiment(cmd, benchmarks.NewSphere(exp.Dimension), exp)
	default:
		return runExperiment(cmd, benchmarks.NewRastrigin(exp.Dimension), exp)
	}
}

// searchProblem is what the built-in algorithms need from a problem:
// box bounds to sample in and a known target to stop at.
type searchProblem interface {
	problem.Problem
	problem.Bounded
	problem.KnownOptimum
}

func runExperiment[P searchProblem](cmd *cobra.Command, p P, exp *Experiment) error {
	log := logging.New("experiment")
	log.Info("batch starting",
		"problem", p.Name(), "algorithm", exp.Algorithm,
		"runs", exp.Runs, "seed", exp.Seed, "backend", exp.Backend)

	batch := runner.New(algorithmFactory[P](exp))
	batch.Backend = exp.Backend
	if exp.Parallel > 0 {
		batch.Parallelism = exp.Parallel
	}
	batch.Init = func(_ int, s *state.State) error {
		var cfg tracking.Config[P]
		cfg.With(conditions.NewEveryNIterations[P](1), tracking.BestObjectiveValue[P, []float64]{})
		state.Insert(s, cfg)
		return nil
	}

	start := time.Now()
	results, err := batch.Run(cmd.Context(), p, exp.Runs, exp.Seed)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	mode := format.ASCII
	if runMarkdown {
		mode = format.Markdown
	}
	tb := format.NewTable(mode)
	tb.Header("Run", "Seed", "Best", "Evaluations", "Solved")
	tb.Columns(
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignCenter},
	)

	solved := 0
	for _, res := range results {
		if res.Err != nil {
			tb.Row(res.Index, res.Seed, "error: "+format.Truncate(res.Err.Error(), 40), "-", format.BoolMark(false))
			continue
		}
		best, evals, err := summarize(res.State)
		if err != nil {
			return err
		}
		hit := p.TargetHit(best)
		if hit {
			solved++
		}
		tb.Row(res.Index, res.Seed, format.FmtObjective(best.Float64()), evals, format.BoolMark(hit))

		if runLogDir != "" {
			if err := writeRunLog(res, runLogDir); err != nil {
				return err
			}
		}
	}
	tb.Footer("", "", "", "", fmt.Sprintf("%d/%d", solved, len(results)))

	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	log.Info("batch finished", "elapsed", format.FmtDuration(elapsed), "solved", solved)
	return nil
}

// algorithmFactory returns a fresh-configuration factory for the
// experiment's algorithm. Both built-ins are driven by uniform
// resampling; they differ in how offspring replace parents.
func algorithmFactory[P searchProblem](exp *Experiment) func() *run.Configuration[P, []float64] {
	return func() *run.Configuration[P, []float64] {
		loop := component.And(
			conditions.NewLessThanIterations[P](exp.Iterations),
			component.Not(conditions.NewOptimumReached[P, []float64]()),
		)
		b := run.NewBuilder[P, []float64]().
			Do(initialization.NewRandomSpread[P](exp.Population)).
			Evaluate().
			UpdateBestIndividual().
			While(loop, func(b *run.Builder[P, []float64]) {
				b.Do(initialization.NewRandomSpread[P](exp.Population)).
					Evaluate()
				if exp.Algorithm == algorithmMuPlusLambda {
					b.Do(replacement.NewKeepFittest[P, []float64](exp.Population))
				} else {
					b.Do(replacement.NewKeepNewest[P, []float64]())
				}
				b.UpdateBestIndividual().Log()
			}).
			Build()
		return b
	}
}

func summarize(s *state.State) (objective.Value, int, error) {
	ref, err := state.Borrow[common.BestIndividual[[]float64]](s)
	if err != nil {
		return objective.Value{}, 0, err
	}
	defer ref.Release()
	evals, err := state.GetValue[common.Evaluations, int](s)
	if err != nil {
		return objective.Value{}, 0, err
	}
	best := ref.Get().Get()
	if best == nil {
		return objective.Worst(), evals, nil
	}
	v, _ := best.Value()
	return v, evals, nil
}

func writeRunLog[P problem.Problem](res runner.Result[P, []float64], dir string) error {
	ref, err := state.Borrow[tracking.Log](res.State)
	if err != nil {
		return err
	}
	defer ref.Release()
	data, err := tracking.MarshalJSON(ref.Get())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%03d-%s.json", res.Index, res.ID))
	return os.WriteFile(path, data, 0o644)
}
