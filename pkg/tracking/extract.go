package tracking

import (
	"gonum.org/v1/gonum/stat"

	"mosaic/pkg/common"
	"mosaic/pkg/lens"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// ExtractLens lifts any lens with a serializable target into an
// extractor. The entry name is the lens name.
type ExtractLens[P problem.Problem, T any] struct {
	Lens lens.Lens[P, T]
}

// NewExtractLens wraps l as an extractor.
func NewExtractLens[P problem.Problem, T any](l lens.Lens[P, T]) ExtractLens[P, T] {
	return ExtractLens[P, T]{Lens: l}
}

func (e ExtractLens[P, T]) Name() string { return e.Lens.Name() }

func (e ExtractLens[P, T]) Extract(p P, s *state.State) (any, error) {
	return e.Lens.Get(p, s)
}

// ExtractState captures a whole serializable custom-state value, by
// identity lens.
func ExtractState[P problem.Problem, T state.CustomState]() ExtractLens[P, T] {
	return NewExtractLens(lens.Id[P, T]())
}

// IterationsExtractor captures the iteration counter value.
func IterationsExtractor[P problem.Problem]() Extractor[P] {
	return NewExtractorFunc[P](IterationsEntry, func(_ P, s *state.State) (any, error) {
		return state.GetValue[common.Iterations, int](s)
	})
}

// BestObjectiveValue captures the objective of the tracked best
// individual under the entry name "best_objective_value". Steps before
// any best exists record nothing.
type BestObjectiveValue[P problem.Problem, E any] struct{}

func (BestObjectiveValue[P, E]) Name() string { return "best_objective_value" }

func (BestObjectiveValue[P, E]) Extract(_ P, s *state.State) (any, error) {
	ref, err := state.Borrow[common.BestIndividual[E]](s)
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	best := ref.Get().Get()
	if best == nil {
		return nil, nil
	}
	v, _ := best.Value()
	return v.Float64(), nil
}

// BestSolution captures the encoding of the tracked best individual
// under "best_solution".
type BestSolution[P problem.Problem, E any] struct{}

func (BestSolution[P, E]) Name() string { return "best_solution" }

func (BestSolution[P, E]) Extract(_ P, s *state.State) (any, error) {
	ref, err := state.Borrow[common.BestIndividual[E]](s)
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	best := ref.Get().Get()
	if best == nil {
		return nil, nil
	}
	return best.Encoding(), nil
}

// ObjectiveSpread captures the standard deviation of the current
// population's objective values under "objective_spread", a cheap
// diversity signal.
type ObjectiveSpread[P problem.Problem, E any] struct{}

func (ObjectiveSpread[P, E]) Name() string { return "objective_spread" }

func (ObjectiveSpread[P, E]) Extract(_ P, s *state.State) (any, error) {
	ref, err := state.Borrow[population.Stack[E]](s)
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	cur, err := ref.Get().Current()
	if err != nil {
		return nil, err
	}
	var values []float64
	for i := range *cur {
		if v, ok := (*cur)[i].Value(); ok && v.IsFinite() {
			values = append(values, v.Float64())
		}
	}
	if len(values) < 2 {
		return 0.0, nil
	}
	return stat.StdDev(values, nil), nil
}
