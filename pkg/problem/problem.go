// Package problem declares the boundary between the framework core and
// problem definitions. The core never computes objective values itself;
// it drives an Evaluator stored in the state registry.
package problem

import (
	"mosaic/pkg/objective"
	"mosaic/pkg/population"
	"mosaic/pkg/state"
)

// Problem is the minimal contract every optimization problem fulfills.
// Components are generic over a concrete problem type P satisfying it;
// the encoding type appears only in the populations the problem's
// evaluator consumes.
type Problem interface {
	Name() string
}

// SingleObjective is a problem with a scalar objective over encoding E.
type SingleObjective[E any] interface {
	Problem
	Objective(E) (objective.Value, error)
}

// MultiObjective is a problem with a vector objective over encoding E.
type MultiObjective[E any] interface {
	Problem
	Objectives(E) (objective.Vector, error)
}

// Bounded is implemented by problems over real vectors with box
// constraints. Initialization operators sample inside these bounds.
type Bounded interface {
	Dimension() int
	Bounds() (lower, upper []float64)
}

// KnownOptimum is implemented by problems whose optimum is known, such
// as benchmark functions. Termination and logging triggers use it.
type KnownOptimum interface {
	Optimum() objective.Value
	// TargetHit reports whether v is good enough to count as solved.
	TargetHit(v objective.Value) bool
}

// Evaluator computes objectives for the unevaluated individuals of a
// population. It returns the number of evaluations performed. An
// evaluator may parallelize internally but returns before the next
// component runs.
type Evaluator[P Problem, E any] interface {
	Evaluate(p P, pop population.Population[E]) (int, error)
}

// Evaluation is the custom state cell holding the run's evaluator.
// Drivers insert it before the run starts, or let a problem that
// implements DefaultEvaluator supply one.
type Evaluation[P Problem, E any] struct {
	state.Marker
	Evaluator Evaluator[P, E]
}

// DefaultEvaluator is implemented by problems that can build their own
// evaluator, so configurations work without manual evaluator wiring.
type DefaultEvaluator[P Problem, E any] interface {
	DefaultEvaluator() Evaluator[P, E]
}

// SequentialEvaluator evaluates a single-objective problem one
// individual at a time, in population order.
type SequentialEvaluator[P SingleObjective[E], E any] struct{}

func (SequentialEvaluator[P, E]) Evaluate(p P, pop population.Population[E]) (int, error) {
	n := 0
	for i := range pop {
		if pop[i].Evaluated() {
			continue
		}
		v, err := p.Objective(pop[i].Encoding())
		if err != nil {
			return n, err
		}
		pop[i].SetObjective(v)
		n++
	}
	return n, nil
}

// SequentialMultiEvaluator is the multi-objective counterpart of
// SequentialEvaluator.
type SequentialMultiEvaluator[P MultiObjective[E], E any] struct{}

func (SequentialMultiEvaluator[P, E]) Evaluate(p P, pop population.Population[E]) (int, error) {
	n := 0
	for i := range pop {
		if pop[i].Evaluated() {
			continue
		}
		v, err := p.Objectives(pop[i].Encoding())
		if err != nil {
			return n, err
		}
		pop[i].SetObjective(v)
		n++
	}
	return n, nil
}
