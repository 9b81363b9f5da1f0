// Package replacement provides components that merge an offspring
// population back into its parent population. All of them consume the
// top two stack levels and push one result, so a loop body of
// generate / evaluate / replace stays stack-balanced.
package replacement

import (
	"slices"

	"mosaic/pkg/component"
	"mosaic/pkg/objective"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// KeepNewest discards the parent population and keeps the offspring
// unchanged: generational replacement. Stack effect: -1.
type KeepNewest[P problem.Problem, E any] struct {
	component.Base[P]
}

// NewKeepNewest returns the generational replacement component.
func NewKeepNewest[P problem.Problem, E any]() *KeepNewest[P, E] {
	return &KeepNewest[P, E]{}
}

func (*KeepNewest[P, E]) Name() string { return "keep_newest" }

func (c *KeepNewest[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *KeepNewest[P, E]) Execute(_ P, s *state.State) error {
	ref, err := state.BorrowMut[population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer ref.Release()

	offspring, err := ref.Get().Pop()
	if err != nil {
		return err
	}
	if _, err := ref.Get().Pop(); err != nil {
		return err
	}
	ref.Get().Push(offspring)
	return nil
}

// KeepFittest merges parents and offspring and keeps the Size best by
// single-objective value: truncation (mu + lambda) replacement.
// Stack effect: -1.
type KeepFittest[P problem.Problem, E any] struct {
	component.Base[P]
	Size int
}

// NewKeepFittest returns the truncation replacement component keeping
// size individuals.
func NewKeepFittest[P problem.Problem, E any](size int) *KeepFittest[P, E] {
	return &KeepFittest[P, E]{Size: size}
}

func (*KeepFittest[P, E]) Name() string { return "keep_fittest" }

func (c *KeepFittest[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *KeepFittest[P, E]) Execute(_ P, s *state.State) error {
	if c.Size <= 0 {
		return state.Invariantf("replacement: keep_fittest with size %d", c.Size)
	}
	ref, err := state.BorrowMut[population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer ref.Release()

	offspring, err := ref.Get().Pop()
	if err != nil {
		return err
	}
	parents, err := ref.Get().Pop()
	if err != nil {
		return err
	}

	merged := append(parents, offspring...)
	// Stable sort keeps ties in stack order, so runs stay reproducible.
	slices.SortStableFunc(merged, func(a, b population.Individual[E]) int {
		av, bv := valueOrWorst(&a), valueOrWorst(&b)
		switch {
		case av.Less(bv):
			return -1
		case bv.Less(av):
			return 1
		default:
			return 0
		}
	})
	keep := c.Size
	if keep > len(merged) {
		keep = len(merged)
	}
	ref.Get().Push(merged[:keep])
	return nil
}

func valueOrWorst[E any](in *population.Individual[E]) objective.Value {
	if v, ok := in.Value(); ok {
		return v
	}
	return objective.Worst()
}
