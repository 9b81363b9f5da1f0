package evaluation

import (
	"testing"

	"mosaic/pkg/benchmarks"
	"mosaic/pkg/common"
	"mosaic/pkg/objective"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

func newStateWith(pop population.Population[[]float64]) *state.State {
	s := state.New()
	var stack population.Stack[[]float64]
	stack.Push(pop)
	state.Insert(s, stack)
	return s
}

func TestEvaluateInstallsDefaultEvaluator(t *testing.T) {
	p := benchmarks.NewSphere(2)
	s := newStateWith(population.Population[[]float64]{
		population.New([]float64{1, 1}),
	})

	c := NewEvaluate[*benchmarks.Sphere, []float64]()
	if err := c.Init(p, s); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !state.Contains[problem.Evaluation[*benchmarks.Sphere, []float64]](s) {
		t.Fatal("Init() did not install the default evaluator")
	}
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	ref, err := state.Borrow[population.Stack[[]float64]](s)
	if err != nil {
		t.Fatalf("Borrow[Stack]() error = %v", err)
	}
	defer ref.Release()
	cur, err := ref.Get().Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	v, ok := (*cur)[0].Value()
	if !ok {
		t.Fatal("individual not evaluated")
	}
	if v.Float64() != 2 {
		t.Errorf("objective = %v, want 2", v.Float64())
	}
}

func TestEvaluateCountsEvaluations(t *testing.T) {
	p := benchmarks.NewSphere(2)
	evaluated, _ := objective.NewValue(5)
	s := newStateWith(population.Population[[]float64]{
		population.New([]float64{1, 0}),
		population.NewEvaluated([]float64{2, 1}, evaluated),
		population.New([]float64{0, 1}),
	})

	c := NewEvaluate[*benchmarks.Sphere, []float64]()
	if err := c.Init(p, s); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	n, err := state.GetValue[common.Evaluations, int](s)
	if err != nil {
		t.Fatalf("GetValue[Evaluations]() error = %v", err)
	}
	if n != 2 {
		t.Errorf("evaluations = %d, want 2 (evaluated individual skipped)", n)
	}
}

func TestUpdateBestIndividualTracksImprovement(t *testing.T) {
	p := benchmarks.NewSphere(2)
	good, _ := objective.NewValue(1)
	better, _ := objective.NewValue(0.5)
	s := newStateWith(population.Population[[]float64]{
		population.NewEvaluated([]float64{1, 0}, good),
		population.NewEvaluated([]float64{0.5, 0.5}, better),
	})

	c := NewUpdateBestIndividual[*benchmarks.Sphere, []float64]()
	if err := c.Init(p, s); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	ref, err := state.Borrow[common.BestIndividual[[]float64]](s)
	if err != nil {
		t.Fatalf("Borrow[BestIndividual]() error = %v", err)
	}
	defer ref.Release()
	best := ref.Get().Get()
	if best == nil {
		t.Fatal("no best recorded")
	}
	v, _ := best.Value()
	if v.Float64() != 0.5 {
		t.Errorf("best = %v, want 0.5", v.Float64())
	}
}

func TestUpdateParetoFrontKeepsNondominated(t *testing.T) {
	p := benchmarks.NewSphere(2)
	a, _ := objective.NewVector(1, 3)
	b, _ := objective.NewVector(3, 1)
	dominated, _ := objective.NewVector(4, 4)
	s := newStateWith(population.Population[[]float64]{
		population.NewEvaluated([]float64{0, 0}, a),
		population.NewEvaluated([]float64{1, 1}, b),
		population.NewEvaluated([]float64{2, 2}, dominated),
	})

	c := NewUpdateParetoFront[*benchmarks.Sphere, []float64]()
	if err := c.Init(p, s); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := c.Execute(p, s); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	ref, err := state.Borrow[common.ParetoFront[[]float64]](s)
	if err != nil {
		t.Fatalf("Borrow[ParetoFront]() error = %v", err)
	}
	defer ref.Release()
	if got := len(ref.Get().Front()); got != 2 {
		t.Errorf("front size = %d, want 2", got)
	}
}
