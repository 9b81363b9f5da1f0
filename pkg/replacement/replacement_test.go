package replacement

import (
	"testing"

	"mosaic/pkg/benchmarks"
	"mosaic/pkg/objective"
	"mosaic/pkg/population"
	"mosaic/pkg/state"
)

func evaluated(enc []float64, v float64) population.Individual[[]float64] {
	obj, _ := objective.NewValue(v)
	return population.NewEvaluated(enc, obj)
}

func newStateWith(t *testing.T, pops ...population.Population[[]float64]) *state.State {
	t.Helper()
	s := state.New()
	var stack population.Stack[[]float64]
	for _, pop := range pops {
		stack.Push(pop)
	}
	state.Insert(s, stack)
	return s
}

func topValues(t *testing.T, s *state.State) []float64 {
	t.Helper()
	ref, err := state.Borrow[population.Stack[[]float64]](s)
	if err != nil {
		t.Fatalf("Borrow[Stack]() error = %v", err)
	}
	defer ref.Release()
	if ref.Get().Len() != 1 {
		t.Fatalf("stack depth = %d, want 1", ref.Get().Len())
	}
	cur, err := ref.Get().Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	out := make([]float64, 0, len(*cur))
	for i := range *cur {
		v, _ := (*cur)[i].Value()
		out = append(out, v.Float64())
	}
	return out
}

func TestKeepNewestDropsParents(t *testing.T) {
	p := benchmarks.NewSphere(1)
	parents := population.Population[[]float64]{evaluated([]float64{1}, 1)}
	offspring := population.Population[[]float64]{evaluated([]float64{2}, 4)}
	s := newStateWith(t, parents, offspring)

	c := NewKeepNewest[*benchmarks.Sphere, []float64]()
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := topValues(t, s)
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("surviving values = %v, want [4]", got)
	}
}

func TestKeepFittestTruncates(t *testing.T) {
	p := benchmarks.NewSphere(1)
	parents := population.Population[[]float64]{
		evaluated([]float64{1}, 1),
		evaluated([]float64{3}, 9),
	}
	offspring := population.Population[[]float64]{
		evaluated([]float64{2}, 4),
		evaluated([]float64{0}, 0),
	}
	s := newStateWith(t, parents, offspring)

	c := NewKeepFittest[*benchmarks.Sphere, []float64](2)
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := topValues(t, s)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("surviving values = %v, want [0 1]", got)
	}
}

func TestKeepFittestShortStack(t *testing.T) {
	p := benchmarks.NewSphere(1)
	s := newStateWith(t, population.Population[[]float64]{evaluated([]float64{1}, 1)})

	c := NewKeepFittest[*benchmarks.Sphere, []float64](2)
	if err := c.Execute(p, s); err == nil {
		t.Error("Execute() with one stack level expected error")
	}
}
