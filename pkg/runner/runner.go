// Package runner executes batches of independent runs of a
// configuration in parallel. Each run gets its own state registry and
// its own random stream, so no registry is ever shared between
// goroutines, only results are collected.
package runner

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mosaic/internal/logging"
	"mosaic/pkg/problem"
	"mosaic/pkg/rng"
	"mosaic/pkg/run"
	"mosaic/pkg/state"
)

// Result is one finished run. Err carries the run's failure, if any;
// State is inspectable either way.
type Result[P problem.Problem, E any] struct {
	ID    string
	Index int
	Seed  uint64
	State *state.State
	Err   error
}

// Batch drives repeated runs of a configuration. Factory builds a fresh
// configuration per run, so component trees never carry state across
// runs. Init, when set, runs on every fresh registry after the random
// stream is seeded.
type Batch[P problem.Problem, E any] struct {
	Factory     func() *run.Configuration[P, E]
	Init        func(index int, s *state.State) error
	Parallelism int
	Backend     string

	log *slog.Logger
}

// New returns a batch over factory with GOMAXPROCS parallelism and the
// PCG backend.
func New[P problem.Problem, E any](factory func() *run.Configuration[P, E]) *Batch[P, E] {
	return &Batch[P, E]{
		Factory:     factory,
		Parallelism: runtime.GOMAXPROCS(0),
		Backend:     rng.BackendPCG,
		log:         logging.New("runner"),
	}
}

// Run executes n runs against p, all seeds derived from seed. The
// derivation happens before any goroutine starts, so results are
// deterministic in seed regardless of scheduling. Results come back
// indexed in run order. Run itself fails only when the context is
// canceled; per-run failures land in Result.Err.
func (b *Batch[P, E]) Run(ctx context.Context, p P, n int, seed uint64) ([]Result[P, E], error) {
	master, err := rng.New(b.Backend, seed)
	if err != nil {
		return nil, err
	}
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	results := make([]Result[P, E], n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Parallelism)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.runOne(p, i, seeds[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (b *Batch[P, E]) runOne(p P, index int, seed uint64) Result[P, E] {
	res := Result[P, E]{
		ID:    uuid.NewString(),
		Index: index,
		Seed:  seed,
	}
	stream, err := rng.New(b.Backend, seed)
	if err != nil {
		res.Err = err
		return res
	}

	b.log.Debug("run starting", "id", res.ID, "index", index, "seed", seed)
	res.State, res.Err = b.Factory().OptimizeWith(p, func(s *state.State) error {
		state.Insert(s, *stream)
		if b.Init != nil {
			return b.Init(index, s)
		}
		return nil
	})
	if res.Err != nil {
		b.log.Warn("run failed", "id", res.ID, "index", index, "err", res.Err)
	} else {
		b.log.Debug("run finished", "id", res.ID, "index", index)
	}
	return res
}
