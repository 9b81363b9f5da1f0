// Package evaluation provides the standard components that connect
// populations to objective values: driving the evaluator, and keeping
// the best-individual and Pareto-front state current.
package evaluation

import (
	"mosaic/pkg/common"
	"mosaic/pkg/component"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Evaluate runs the registry's evaluator over the current population
// and adds the performed evaluations to the evaluation counter.
// Stack effect: none.
type Evaluate[P problem.Problem, E any] struct {
	component.Base[P]
}

// NewEvaluate returns the evaluation component.
func NewEvaluate[P problem.Problem, E any]() *Evaluate[P, E] {
	return &Evaluate[P, E]{}
}

func (*Evaluate[P, E]) Name() string { return "evaluate" }

// Init ensures the evaluation counter exists and, for problems that
// provide one, installs the default evaluator. An evaluator inserted by
// the driver beforehand is kept.
func (c *Evaluate[P, E]) Init(p P, s *state.State) error {
	if err := state.Entry[common.Evaluations](s).OrInsert(common.Evaluations{}); err != nil {
		return err
	}
	if d, ok := any(p).(problem.DefaultEvaluator[P, E]); ok {
		return state.Entry[problem.Evaluation[P, E]](s).OrInsertWith(func() problem.Evaluation[P, E] {
			return problem.Evaluation[P, E]{Evaluator: d.DefaultEvaluator()}
		})
	}
	return nil
}

func (c *Evaluate[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[problem.Evaluation[P, E]](r, c.Name())
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *Evaluate[P, E]) Execute(p P, s *state.State) error {
	eval, stack, err := state.BorrowMut2[problem.Evaluation[P, E], population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer eval.Release()
	defer stack.Release()

	cur, err := stack.Get().Current()
	if err != nil {
		return err
	}
	n, err := eval.Get().Evaluator.Evaluate(p, *cur)
	if err != nil {
		return err
	}

	counter, err := state.BorrowMut[common.Evaluations](s)
	if err != nil {
		return err
	}
	defer counter.Release()
	counter.Get().Add(n)
	return nil
}

// UpdateBestIndividual offers every member of the current population to
// the best-individual tracker. Stack effect: none.
type UpdateBestIndividual[P problem.Problem, E any] struct {
	component.Base[P]
}

// NewUpdateBestIndividual returns the tracker component.
func NewUpdateBestIndividual[P problem.Problem, E any]() *UpdateBestIndividual[P, E] {
	return &UpdateBestIndividual[P, E]{}
}

func (*UpdateBestIndividual[P, E]) Name() string { return "update_best_individual" }

func (c *UpdateBestIndividual[P, E]) Init(_ P, s *state.State) error {
	return state.Entry[common.BestIndividual[E]](s).OrInsert(common.BestIndividual[E]{})
}

func (c *UpdateBestIndividual[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *UpdateBestIndividual[P, E]) Execute(_ P, s *state.State) error {
	best, stack, err := state.BorrowMut2[common.BestIndividual[E], population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer best.Release()
	defer stack.Release()

	cur, err := stack.Get().Current()
	if err != nil {
		return err
	}
	for i := range *cur {
		best.Get().Update((*cur)[i])
	}
	return nil
}

// UpdateParetoFront offers every member of the current population to
// the Pareto front. Stack effect: none.
type UpdateParetoFront[P problem.Problem, E any] struct {
	component.Base[P]
}

// NewUpdateParetoFront returns the front-maintenance component.
func NewUpdateParetoFront[P problem.Problem, E any]() *UpdateParetoFront[P, E] {
	return &UpdateParetoFront[P, E]{}
}

func (*UpdateParetoFront[P, E]) Name() string { return "update_pareto_front" }

func (c *UpdateParetoFront[P, E]) Init(_ P, s *state.State) error {
	return state.Entry[common.ParetoFront[E]](s).OrInsert(common.ParetoFront[E]{})
}

func (c *UpdateParetoFront[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *UpdateParetoFront[P, E]) Execute(_ P, s *state.State) error {
	front, stack, err := state.BorrowMut2[common.ParetoFront[E], population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer front.Release()
	defer stack.Release()

	cur, err := stack.Get().Current()
	if err != nil {
		return err
	}
	for i := range *cur {
		front.Get().Update((*cur)[i])
	}
	return nil
}
