package run

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mosaic/pkg/benchmarks"
	"mosaic/pkg/component"
	"mosaic/pkg/conditions"
	"mosaic/pkg/initialization"
	"mosaic/pkg/replacement"
	"mosaic/pkg/rng"
	"mosaic/pkg/state"
	"mosaic/pkg/tracking"
)

func always() component.Condition[*benchmarks.Sphere] {
	return component.NewConditionFunc("always", func(*benchmarks.Sphere, *state.State) (bool, error) {
		return true, nil
	})
}

func withLogConfig(pairs ...tracking.Pair[*benchmarks.Sphere]) func(*state.State) error {
	return func(s *state.State) error {
		var cfg tracking.Config[*benchmarks.Sphere]
		for _, p := range pairs {
			cfg.With(p.Trigger, p.Extractor)
		}
		state.Insert(s, cfg)
		r, err := rng.New(rng.BackendPCG, 42)
		if err != nil {
			return err
		}
		state.Insert(s, *r)
		return nil
	}
}

func TestLoopLogsIterationCounter(t *testing.T) {
	p := benchmarks.NewSphere(3)
	cfg := NewBuilder[*benchmarks.Sphere, []float64]().
		Do(initialization.NewRandomSpread[*benchmarks.Sphere](1)).
		While(conditions.NewLessThanIterations[*benchmarks.Sphere](10), func(b *Builder[*benchmarks.Sphere, []float64]) {
			b.Log()
		}).
		Build()

	s, err := cfg.OptimizeWith(p, withLogConfig(tracking.Pair[*benchmarks.Sphere]{
		Trigger:   always(),
		Extractor: tracking.IterationsExtractor[*benchmarks.Sphere](),
	}))
	if err != nil {
		t.Fatalf("OptimizeWith() error = %v", err)
	}

	ref, err := state.Borrow[tracking.Log](s)
	if err != nil {
		t.Fatalf("Borrow[Log]() error = %v", err)
	}
	defer ref.Release()
	log := ref.Get()

	if log.Len() != 10 {
		t.Fatalf("log.Len() = %d, want 10", log.Len())
	}
	for i, step := range log.Steps() {
		entries := step.Entries()
		if len(entries) != 1 {
			t.Fatalf("step %d has %d entries, want 1", i, len(entries))
		}
		if entries[0].Name != tracking.IterationsEntry {
			t.Errorf("step %d entry name = %q, want %q", i, entries[0].Name, tracking.IterationsEntry)
		}
		if entries[0].Value != i {
			t.Errorf("step %d iterations = %v, want %d", i, entries[0].Value, i)
		}
	}
}

func TestBranchOnOddIteration(t *testing.T) {
	p := benchmarks.NewSphere(3)
	var got []string
	record := func(v string) component.Component[*benchmarks.Sphere] {
		return component.NewFunc("record_"+v, func(*benchmarks.Sphere, *state.State) error {
			got = append(got, v)
			return nil
		})
	}

	cfg := NewBuilder[*benchmarks.Sphere, []float64]().
		While(conditions.NewLessThanIterations[*benchmarks.Sphere](4), func(b *Builder[*benchmarks.Sphere, []float64]) {
			b.IfElse(conditions.NewEveryNIterations[*benchmarks.Sphere](2),
				func(b *Builder[*benchmarks.Sphere, []float64]) { b.Do(record("even")) },
				func(b *Builder[*benchmarks.Sphere, []float64]) { b.Do(record("odd")) },
			)
		}).
		Build()

	if _, err := cfg.Optimize(p); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	want := []string{"even", "odd", "even", "odd"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("branch order mismatch (-want +got):\n%s", diff)
	}
}

type gauge struct {
	state.Marker
	n int
}

func TestScopeHidesState(t *testing.T) {
	p := benchmarks.NewSphere(3)
	var observed []int

	cfg := NewBuilder[*benchmarks.Sphere, []float64]().
		Do(component.NewFunc("insert_outer", func(_ *benchmarks.Sphere, s *state.State) error {
			state.Insert(s, gauge{})
			return nil
		})).
		Scope(func(b *Builder[*benchmarks.Sphere, []float64]) {
			b.Do(component.NewFunc("insert_inner", func(_ *benchmarks.Sphere, s *state.State) error {
				state.Insert(s, gauge{n: 100})
				return nil
			})).Do(component.NewFunc("mutate_inner", func(_ *benchmarks.Sphere, s *state.State) error {
				ref, err := state.BorrowMut[gauge](s)
				if err != nil {
					return err
				}
				defer ref.Release()
				ref.Get().n = 101
				return nil
			}))
		}).
		Do(component.NewFunc("read_outer", func(_ *benchmarks.Sphere, s *state.State) error {
			ref, err := state.Borrow[gauge](s)
			if err != nil {
				return err
			}
			defer ref.Release()
			observed = append(observed, ref.Get().n)
			return nil
		})).
		Build()

	if _, err := cfg.Optimize(p); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if len(observed) != 1 || observed[0] != 0 {
		t.Errorf("outer gauge after scope = %v, want [0]", observed)
	}
}

func TestRandomSearchDeterminism(t *testing.T) {
	p := benchmarks.NewSphere(3)

	build := func() *Configuration[*benchmarks.Sphere, []float64] {
		return NewBuilder[*benchmarks.Sphere, []float64]().
			Do(initialization.NewRandomSpread[*benchmarks.Sphere](1)).
			Evaluate().
			UpdateBestIndividual().
			While(conditions.NewLessThanIterations[*benchmarks.Sphere](100), func(b *Builder[*benchmarks.Sphere, []float64]) {
				b.Do(initialization.NewRandomSpread[*benchmarks.Sphere](1)).
					Evaluate().
					Do(replacement.NewKeepNewest[*benchmarks.Sphere, []float64]()).
					UpdateBestIndividual().
					Log()
			}).
			Build()
	}

	runOnce := func() []any {
		t.Helper()
		s, err := build().OptimizeWith(p, withLogConfig(tracking.Pair[*benchmarks.Sphere]{
			Trigger:   always(),
			Extractor: tracking.BestObjectiveValue[*benchmarks.Sphere, []float64]{},
		}))
		if err != nil {
			t.Fatalf("OptimizeWith() error = %v", err)
		}
		ref, err := state.Borrow[tracking.Log](s)
		if err != nil {
			t.Fatalf("Borrow[Log]() error = %v", err)
		}
		defer ref.Release()
		return ref.Get().Find("best_objective_value")
	}

	first := runOnce()
	second := runOnce()
	if len(first) != 100 {
		t.Fatalf("logged %d best values, want 100", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different best logs (-first +second):\n%s", diff)
	}
}

type needsGauge struct {
	component.Base[*benchmarks.Sphere]
	executed *bool
}

func (needsGauge) Name() string { return "needs_gauge" }

func (c needsGauge) Require(_ *benchmarks.Sphere, r *state.Requirements) error {
	state.Depend[gauge](r, c.Name())
	return nil
}

func (c needsGauge) Execute(*benchmarks.Sphere, *state.State) error {
	*c.executed = true
	return nil
}

func TestRequiredMissingFailsBeforeExecute(t *testing.T) {
	p := benchmarks.NewSphere(3)
	executed := false

	cfg := NewBuilder[*benchmarks.Sphere, []float64]().
		Do(needsGauge{executed: &executed}).
		Build()

	_, err := cfg.Optimize(p)
	if !errors.Is(err, state.ErrRequiredMissing) {
		t.Fatalf("Optimize() error = %v, want ErrRequiredMissing", err)
	}
	if executed {
		t.Error("component executed despite missing requirement")
	}
}
