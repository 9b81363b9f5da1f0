// Package conditions provides the standard boolean components used as
// loop guards, branch tests, and logging triggers.
package conditions

import (
	"fmt"
	"math"

	"mosaic/pkg/common"
	"mosaic/pkg/component"
	"mosaic/pkg/lens"
	"mosaic/pkg/problem"
	"mosaic/pkg/rng"
	"mosaic/pkg/state"
)

// LessThanIterations holds while the iteration counter is below n: the
// usual fixed-budget loop guard.
type LessThanIterations[P problem.Problem] struct {
	component.Base[P]
	N int
}

// NewLessThanIterations returns the guard for an n-iteration loop.
func NewLessThanIterations[P problem.Problem](n int) *LessThanIterations[P] {
	return &LessThanIterations[P]{N: n}
}

func (*LessThanIterations[P]) Name() string { return "less_than_iterations" }

func (c *LessThanIterations[P]) Init(_ P, s *state.State) error {
	return state.Entry[common.Iterations](s).OrInsert(common.Iterations{})
}

func (c *LessThanIterations[P]) Evaluate(_ P, s *state.State) (bool, error) {
	v, err := state.GetValue[common.Iterations, int](s)
	if err != nil {
		return false, err
	}
	return v < c.N, nil
}

// LessThanEvaluations holds while the evaluation counter is below n.
type LessThanEvaluations[P problem.Problem] struct {
	component.Base[P]
	N int
}

// NewLessThanEvaluations returns the guard for an n-evaluation budget.
func NewLessThanEvaluations[P problem.Problem](n int) *LessThanEvaluations[P] {
	return &LessThanEvaluations[P]{N: n}
}

func (*LessThanEvaluations[P]) Name() string { return "less_than_evaluations" }

func (c *LessThanEvaluations[P]) Init(_ P, s *state.State) error {
	return state.Entry[common.Evaluations](s).OrInsert(common.Evaluations{})
}

func (c *LessThanEvaluations[P]) Evaluate(_ P, s *state.State) (bool, error) {
	v, err := state.GetValue[common.Evaluations, int](s)
	if err != nil {
		return false, err
	}
	return v < c.N, nil
}

// EveryN holds whenever a lens-addressed counter is divisible by n.
// With the iteration counter it fires every n-th iteration; any other
// integer counter works the same way.
type EveryN[P problem.Problem] struct {
	component.Base[P]
	Counter lens.Lens[P, int]
	N       int
}

// NewEveryN builds the divisibility trigger on counter.
func NewEveryN[P problem.Problem](counter lens.Lens[P, int], n int) *EveryN[P] {
	return &EveryN[P]{Counter: counter, N: n}
}

// NewEveryNIterations builds the divisibility trigger on the iteration
// counter.
func NewEveryNIterations[P problem.Problem](n int) *EveryN[P] {
	return NewEveryN[P](lens.ValueOf[P, common.Iterations, int](), n)
}

// NewEveryNEvaluations builds the divisibility trigger on the
// evaluation counter.
func NewEveryNEvaluations[P problem.Problem](n int) *EveryN[P] {
	return NewEveryN[P](lens.ValueOf[P, common.Evaluations, int](), n)
}

func (*EveryN[P]) Name() string { return "every_n" }

func (c *EveryN[P]) Evaluate(p P, s *state.State) (bool, error) {
	if c.N <= 0 {
		return false, state.Invariantf("conditions: every_n with n = %d", c.N)
	}
	v, err := c.Counter.Get(p, s)
	if err != nil {
		return false, err
	}
	return v%c.N == 0, nil
}

// Equality compares two observations of a value; OnChange fires when
// they are not equal.
type Equality func(previous, current float64) bool

// Exact treats any difference as a change.
func Exact() Equality {
	return func(a, b float64) bool { return a == b }
}

// DeltaBelow ignores changes of magnitude up to threshold.
func DeltaBelow(threshold float64) Equality {
	return func(a, b float64) bool { return math.Abs(a-b) <= threshold }
}

// OnChange fires when a lens-addressed value differs from its previous
// observation under the given equality. The first observation always
// fires.
type OnChange[P problem.Problem] struct {
	component.Base[P]
	Source lens.Lens[P, float64]
	Equal  Equality

	previous float64
	seen     bool
}

// NewOnChange builds the change trigger on source.
func NewOnChange[P problem.Problem](source lens.Lens[P, float64], equal Equality) *OnChange[P] {
	return &OnChange[P]{Source: source, Equal: equal}
}

func (*OnChange[P]) Name() string { return "on_change" }

// Init clears the observation memory so a re-initialized condition
// (e.g. at loop entry) starts fresh.
func (c *OnChange[P]) Init(P, *state.State) error {
	c.seen = false
	return nil
}

func (c *OnChange[P]) Evaluate(p P, s *state.State) (bool, error) {
	v, err := c.Source.Get(p, s)
	if err != nil {
		return false, err
	}
	if !c.seen {
		c.seen = true
		c.previous = v
		return true, nil
	}
	changed := !c.Equal(c.previous, v)
	if changed {
		c.previous = v
	}
	return changed, nil
}

// OptimumReached holds once the tracked best individual satisfies the
// problem's target predicate.
type OptimumReached[P interface {
	problem.Problem
	problem.KnownOptimum
}, E any] struct {
	component.Base[P]
}

// NewOptimumReached builds the target-hit condition.
func NewOptimumReached[P interface {
	problem.Problem
	problem.KnownOptimum
}, E any]() *OptimumReached[P, E] {
	return &OptimumReached[P, E]{}
}

func (*OptimumReached[P, E]) Name() string { return "optimum_reached" }

func (c *OptimumReached[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[common.BestIndividual[E]](r, c.Name())
	return nil
}

func (c *OptimumReached[P, E]) Evaluate(p P, s *state.State) (bool, error) {
	ref, err := state.Borrow[common.BestIndividual[E]](s)
	if err != nil {
		return false, err
	}
	defer ref.Release()
	best := ref.Get().Get()
	if best == nil {
		return false, nil
	}
	v, ok := best.Value()
	if !ok {
		return false, nil
	}
	return p.TargetHit(v), nil
}

// DistanceToOptimumBelow holds once the best objective is within delta
// of the problem's known optimum.
type DistanceToOptimumBelow[P interface {
	problem.Problem
	problem.KnownOptimum
}, E any] struct {
	component.Base[P]
	Delta float64
}

// NewDistanceToOptimumBelow builds the δ-proximity condition.
func NewDistanceToOptimumBelow[P interface {
	problem.Problem
	problem.KnownOptimum
}, E any](delta float64) *DistanceToOptimumBelow[P, E] {
	return &DistanceToOptimumBelow[P, E]{Delta: delta}
}

func (*DistanceToOptimumBelow[P, E]) Name() string { return "distance_to_optimum_below" }

func (c *DistanceToOptimumBelow[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[common.BestIndividual[E]](r, c.Name())
	return nil
}

func (c *DistanceToOptimumBelow[P, E]) Evaluate(p P, s *state.State) (bool, error) {
	ref, err := state.Borrow[common.BestIndividual[E]](s)
	if err != nil {
		return false, err
	}
	defer ref.Release()
	best := ref.Get().Get()
	if best == nil {
		return false, nil
	}
	v, ok := best.Value()
	if !ok || !v.IsFinite() {
		return false, nil
	}
	return math.Abs(v.Float64()-p.Optimum().Float64()) <= c.Delta, nil
}

// WithProbability holds with probability p on each evaluation, drawing
// from the run's random source.
type WithProbability[P problem.Problem] struct {
	component.Base[P]
	P float64
}

// NewWithProbability builds the Bernoulli condition.
func NewWithProbability[P problem.Problem](p float64) (*WithProbability[P], error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("conditions: probability %v outside [0, 1]", p)
	}
	return &WithProbability[P]{P: p}, nil
}

func (*WithProbability[P]) Name() string { return "with_probability" }

func (c *WithProbability[P]) Require(_ P, r *state.Requirements) error {
	state.Depend[rng.Rand](r, c.Name())
	return nil
}

func (c *WithProbability[P]) Evaluate(_ P, s *state.State) (bool, error) {
	ref, err := state.BorrowMut[rng.Rand](s)
	if err != nil {
		return false, err
	}
	defer ref.Release()
	return ref.Get().Float64() < c.P, nil
}
