// Package run ties a component tree to a problem: the Configuration
// that owns a root component, and the fluent Builder that assembles it.
package run

import (
	"mosaic/pkg/component"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/rng"
	"mosaic/pkg/state"
	"mosaic/pkg/tracking"
)

// Configuration is a ready-to-run algorithm: a root component over
// problem type P with populations over encoding E.
type Configuration[P problem.Problem, E any] struct {
	root component.Component[P]
}

// NewConfiguration wraps root. Most callers go through the Builder
// instead.
func NewConfiguration[P problem.Problem, E any](root component.Component[P]) *Configuration[P, E] {
	return &Configuration[P, E]{root: root}
}

// Root exposes the component tree, e.g. for embedding into a larger
// configuration.
func (c *Configuration[P, E]) Root() component.Component[P] { return c.root }

// Optimize runs the configuration against p with a fresh registry and
// an OS-seeded random source. The returned registry holds the log, the
// tracked best individual or Pareto front, the counters, and any custom
// state components added. On error, the registry captures everything
// collected up to the failure.
func (c *Configuration[P, E]) Optimize(p P) (*state.State, error) {
	return c.OptimizeWith(p, nil)
}

// OptimizeWith is Optimize with an init hook that runs on the fresh
// registry before the component tree initializes. Use it to seed an
// explicit random source, an evaluator, or a log configuration. A
// random source inserted by init is kept; otherwise a default one is
// added.
func (c *Configuration[P, E]) OptimizeWith(p P, init func(*state.State) error) (*state.State, error) {
	s := state.New()
	state.Insert(s, population.Stack[E]{})
	state.Insert(s, tracking.Log{})

	if init != nil {
		if err := init(s); err != nil {
			return s, err
		}
	}
	if !state.Contains[rng.Rand](s) {
		state.Insert(s, *rng.NewDefault())
	}

	if err := c.root.Init(p, s); err != nil {
		return s, err
	}
	reqs := state.NewRequirements()
	if err := c.root.Require(p, reqs); err != nil {
		return s, err
	}
	if err := reqs.Check(s); err != nil {
		return s, err
	}
	return s, c.root.Execute(p, s)
}
