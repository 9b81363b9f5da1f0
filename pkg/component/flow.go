package component

import (
	"mosaic/pkg/common"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Control-flow combinators. Each is itself a component, so arbitrary
// nesting works. Errors from children propagate verbatim: retrying and
// recovery belong to drivers, not combinators.

// block runs its children unconditionally, in declaration order.
type block[P problem.Problem] struct {
	children []Component[P]
}

// NewBlock builds a sequence component from children.
func NewBlock[P problem.Problem](children ...Component[P]) Component[P] {
	return &block[P]{children: children}
}

func (b *block[P]) Name() string { return "block" }

func (b *block[P]) Init(p P, s *state.State) error {
	for _, c := range b.children {
		if err := c.Init(p, s); err != nil {
			return err
		}
	}
	return nil
}

func (b *block[P]) Require(p P, r *state.Requirements) error {
	for _, c := range b.children {
		if err := c.Require(p, r); err != nil {
			return err
		}
	}
	return nil
}

func (b *block[P]) Execute(p P, s *state.State) error {
	for _, c := range b.children {
		if err := c.Execute(p, s); err != nil {
			return err
		}
	}
	return nil
}

// loop runs body while cond holds, counting iterations in
// common.Iterations.
type loop[P problem.Problem] struct {
	cond Condition[P]
	body Component[P]
}

// NewLoop builds a while-loop from a condition and a body. On execute
// the loop ensures a common.Iterations counter exists (an existing
// counter is continued, not reset; hide a nested loop's counter with a
// Scope that inserts a fresh one), re-initializes the condition, and
// then alternates evaluate / body / increment until the condition
// fails. The increment happens after the body, so entries logged inside
// the body observe the not-yet-incremented value.
func NewLoop[P problem.Problem](cond Condition[P], body Component[P]) Component[P] {
	return &loop[P]{cond: cond, body: body}
}

func (l *loop[P]) Name() string { return "loop" }

func (l *loop[P]) Init(p P, s *state.State) error {
	if err := l.cond.Init(p, s); err != nil {
		return err
	}
	return l.body.Init(p, s)
}

func (l *loop[P]) Require(p P, r *state.Requirements) error {
	if err := l.cond.Require(p, r); err != nil {
		return err
	}
	return l.body.Require(p, r)
}

func (l *loop[P]) Execute(p P, s *state.State) error {
	if err := state.Entry[common.Iterations](s).OrInsert(common.Iterations{}); err != nil {
		return err
	}
	if err := l.cond.Init(p, s); err != nil {
		return err
	}
	for {
		ok, err := l.cond.Evaluate(p, s)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := l.body.Execute(p, s); err != nil {
			return err
		}
		ref, err := state.BorrowMut[common.Iterations](s)
		if err != nil {
			return err
		}
		ref.Get().SetValue(ref.Get().Value() + 1)
		ref.Release()
	}
}

// branch evaluates cond and runs exactly one of its bodies.
type branch[P problem.Problem] struct {
	cond      Condition[P]
	then      Component[P]
	otherwise Component[P]
}

// NewBranch builds an if/else component. otherwise may be nil for a
// plain if.
func NewBranch[P problem.Problem](cond Condition[P], then, otherwise Component[P]) Component[P] {
	return &branch[P]{cond: cond, then: then, otherwise: otherwise}
}

func (b *branch[P]) Name() string { return "branch" }

func (b *branch[P]) Init(p P, s *state.State) error {
	if err := b.cond.Init(p, s); err != nil {
		return err
	}
	if err := b.then.Init(p, s); err != nil {
		return err
	}
	if b.otherwise != nil {
		return b.otherwise.Init(p, s)
	}
	return nil
}

func (b *branch[P]) Require(p P, r *state.Requirements) error {
	if err := b.cond.Require(p, r); err != nil {
		return err
	}
	if err := b.then.Require(p, r); err != nil {
		return err
	}
	if b.otherwise != nil {
		return b.otherwise.Require(p, r)
	}
	return nil
}

func (b *branch[P]) Execute(p P, s *state.State) error {
	ok, err := b.cond.Evaluate(p, s)
	if err != nil {
		return err
	}
	if ok {
		return b.then.Execute(p, s)
	}
	if b.otherwise != nil {
		return b.otherwise.Execute(p, s)
	}
	return nil
}

// scope runs its body inside a child registry that is discarded
// afterwards.
type scope[P problem.Problem] struct {
	body Component[P]
	init func(s *state.State) error
}

// NewScope builds a scope around body. State inserted inside the child
// scope shadows the parent and vanishes when the scope exits.
func NewScope[P problem.Problem](body Component[P]) Component[P] {
	return &scope[P]{body: body}
}

// NewScopeWith additionally runs init on the fresh child registry
// before the body is re-initialized, typically to insert local shadows
// such as a scoped iteration counter.
func NewScopeWith[P problem.Problem](init func(s *state.State) error, body Component[P]) Component[P] {
	return &scope[P]{body: body, init: init}
}

func (sc *scope[P]) Name() string { return "scope" }

func (sc *scope[P]) Init(P, *state.State) error { return nil }

// Require is a no-op: the body's requirements refer to state that only
// exists inside the child scope, which is not open at check time.
func (sc *scope[P]) Require(P, *state.Requirements) error { return nil }

func (sc *scope[P]) Execute(p P, s *state.State) error {
	child := s.Child()
	if sc.init != nil {
		if err := sc.init(child); err != nil {
			return err
		}
	}
	if err := sc.body.Init(p, child); err != nil {
		return err
	}
	return sc.body.Execute(p, child)
}
