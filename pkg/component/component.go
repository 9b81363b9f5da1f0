// Package component defines the execution model of the framework: the
// Component and Condition abstractions with their three-phase lifecycle
// (init, require, execute) and the control-flow combinators that turn a
// tree of components into an algorithm.
package component

import (
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Component is one piece of algorithm logic over a problem type P.
//
// Init registers any custom state the component owns. It must be
// idempotent with respect to existing state: state already present is
// left alone. Require declares state that must exist by run start;
// unmet requirements fail the run before anything executes. Execute
// performs the component's work against the shared registry.
type Component[P problem.Problem] interface {
	Name() string
	Init(p P, s *state.State) error
	Require(p P, r *state.Requirements) error
	Execute(p P, s *state.State) error
}

// Condition is a component that additionally evaluates to a boolean.
// Loops and branches are driven by conditions; the logging subsystem
// uses them as triggers.
type Condition[P problem.Problem] interface {
	Component[P]
	Evaluate(p P, s *state.State) (bool, error)
}

// Base provides no-op lifecycle methods. Leaf components embed it and
// override what they need.
type Base[P problem.Problem] struct{}

func (Base[P]) Init(P, *state.State) error           { return nil }
func (Base[P]) Require(P, *state.Requirements) error { return nil }
func (Base[P]) Execute(P, *state.State) error        { return nil }

// Func adapts a plain function to the Component interface, for
// one-off glue that does not deserve a type.
type Func[P problem.Problem] struct {
	Base[P]
	FuncName string
	Fn       func(p P, s *state.State) error
}

// NewFunc wraps fn as a component called name.
func NewFunc[P problem.Problem](name string, fn func(p P, s *state.State) error) *Func[P] {
	return &Func[P]{FuncName: name, Fn: fn}
}

func (f *Func[P]) Name() string { return f.FuncName }

func (f *Func[P]) Execute(p P, s *state.State) error { return f.Fn(p, s) }
