package component

import (
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Boolean composition of conditions. Init and Require delegate to every
// operand; Evaluate short-circuits left to right.

type and[P problem.Problem] struct {
	conds []Condition[P]
}

// And is true when every operand is true.
func And[P problem.Problem](conds ...Condition[P]) Condition[P] {
	return &and[P]{conds: conds}
}

func (a *and[P]) Name() string { return "and" }

func (a *and[P]) Init(p P, s *state.State) error {
	for _, c := range a.conds {
		if err := c.Init(p, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *and[P]) Require(p P, r *state.Requirements) error {
	for _, c := range a.conds {
		if err := c.Require(p, r); err != nil {
			return err
		}
	}
	return nil
}

func (a *and[P]) Execute(P, *state.State) error { return nil }

func (a *and[P]) Evaluate(p P, s *state.State) (bool, error) {
	for _, c := range a.conds {
		ok, err := c.Evaluate(p, s)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

type or[P problem.Problem] struct {
	conds []Condition[P]
}

// Or is true when at least one operand is true.
func Or[P problem.Problem](conds ...Condition[P]) Condition[P] {
	return &or[P]{conds: conds}
}

func (o *or[P]) Name() string { return "or" }

func (o *or[P]) Init(p P, s *state.State) error {
	for _, c := range o.conds {
		if err := c.Init(p, s); err != nil {
			return err
		}
	}
	return nil
}

func (o *or[P]) Require(p P, r *state.Requirements) error {
	for _, c := range o.conds {
		if err := c.Require(p, r); err != nil {
			return err
		}
	}
	return nil
}

func (o *or[P]) Execute(P, *state.State) error { return nil }

func (o *or[P]) Evaluate(p P, s *state.State) (bool, error) {
	for _, c := range o.conds {
		ok, err := c.Evaluate(p, s)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type not[P problem.Problem] struct {
	cond Condition[P]
}

// Not negates a condition.
func Not[P problem.Problem](cond Condition[P]) Condition[P] {
	return &not[P]{cond: cond}
}

func (n *not[P]) Name() string { return "not" }

func (n *not[P]) Init(p P, s *state.State) error { return n.cond.Init(p, s) }

func (n *not[P]) Require(p P, r *state.Requirements) error { return n.cond.Require(p, r) }

func (n *not[P]) Execute(P, *state.State) error { return nil }

func (n *not[P]) Evaluate(p P, s *state.State) (bool, error) {
	ok, err := n.cond.Evaluate(p, s)
	return !ok, err
}

// ConditionFunc adapts a pure predicate over state to the Condition
// interface.
type ConditionFunc[P problem.Problem] struct {
	Base[P]
	CondName string
	Fn       func(p P, s *state.State) (bool, error)
}

// NewConditionFunc wraps fn as a condition called name.
func NewConditionFunc[P problem.Problem](name string, fn func(p P, s *state.State) (bool, error)) *ConditionFunc[P] {
	return &ConditionFunc[P]{CondName: name, Fn: fn}
}

func (c *ConditionFunc[P]) Name() string { return c.CondName }

func (c *ConditionFunc[P]) Evaluate(p P, s *state.State) (bool, error) { return c.Fn(p, s) }
